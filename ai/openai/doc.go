// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package openai implements the ai.Classifier interface using
// OpenAI-compatible chat APIs.
//
// This package uses the langchaingo library to communicate with OpenAI or
// OpenAI-compatible services (such as Ollama, vLLM, or hosted gateways).
// Responses are requested in JSON mode and parsed into core.Classification
// values; malformed responses are retried a few times before failing.
//
// # Usage
//
//	config := ai.NewConfig(
//	    ai.WithHost("http://localhost:11434"), // /v1 added automatically
//	    ai.WithModel("qwen2.5:3b"),
//	)
//
//	classifier, err := openai.NewClassifier(config, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := classifier.Classify(ctx, paper)
package openai
