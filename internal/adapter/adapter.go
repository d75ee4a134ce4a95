// Package adapter selects the DataSource that provides the raw tournament corpus.
// Providers register a factory from their init function.
package adapter

import (
	"fmt"
	"sort"
	"sync"

	"TennisGraph/internal/interfaces"

	"github.com/sirupsen/logrus"
)

var (
	factoryMu       sync.RWMutex
	factoryRegistry = make(map[string]interfaces.Factory)
)

// Register called from provider init functions
func Register(kind string, factory interfaces.Factory) {
	if factory == nil {
		panic(fmt.Sprintf("adapter: factory for source %q is nil", kind))
	}
	factoryMu.Lock()
	defer factoryMu.Unlock()
	if _, exists := factoryRegistry[kind]; exists {
		logrus.Warnf("data source %s already registered, overriding", kind)
	}
	factoryRegistry[kind] = factory
}

// GetFactory factory registered for kind
func GetFactory(kind string) (interfaces.Factory, bool) {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	factory, ok := factoryRegistry[kind]
	return factory, ok
}

// ListFactories registered source kinds, sorted
func ListFactories() []string {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	kinds := make([]string, 0, len(factoryRegistry))
	for k := range factoryRegistry {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
