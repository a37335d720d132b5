// Package config loads the runtime profile from a YAML file.
//
// The profile names the paper source and its categories, the classifier
// endpoint, interest tags, delivery channels and the data directory. The
// API key never lives in the file; the profile names an environment
// variable and Load resolves it at startup.
//
// A minimal profile:
//
//	categories: [cs.CL, cs.CV]
//	llm:
//	  model: qwen2.5:3b
//	  host: http://localhost:11434
//	channels:
//	  - type: feishu
//	    webhook_url: https://open.feishu.cn/open-apis/bot/v2/hook/...
package config
