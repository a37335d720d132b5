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


package notify

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownChannel indicates no factory is registered under the given name.
var ErrUnknownChannel = errors.New("unknown channel type")

// Factory constructs a Notifier from free-form options. Keys a given
// channel understands are documented on its package.
type Factory func(options map[string]string) (Notifier, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register makes a channel factory available under the given name.
// Registering the same name twice panics; it indicates a wiring bug.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("notify: factory %q registered twice", name))
	}
	registry[name] = factory
}

// Open constructs the named channel.
func Open(name string, options map[string]string) (Notifier, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChannel, name)
	}
	return factory(options)
}

// Names returns the registered channel names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
