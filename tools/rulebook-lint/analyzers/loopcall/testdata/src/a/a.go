package a

import "context"

type Source struct{ Address string }

type SourceStore interface {
	SaveSource(ctx context.Context, source *Source) error
	FindSourceByAddress(ctx context.Context, address string) (*Source, error)
}

type Fetcher interface {
	Fetch(ctx context.Context, address string) ([]byte, error)
}

func bad(ctx context.Context, addresses []string, store SourceStore, f Fetcher) {
	for _, address := range addresses {
		f.Fetch(ctx, address)                    // want "Fetch called inside loop"
		store.FindSourceByAddress(ctx, address) // want "FindSourceByAddress called inside loop"
	}
	for i := 0; i < len(addresses); i++ {
		store.SaveSource(ctx, &Source{Address: addresses[i]}) // want "SaveSource called inside loop"
	}
}

func good(ctx context.Context, addresses []string, f Fetcher) {
	// No external calls - should not flag
	for _, address := range addresses {
		_ = len(address)
	}
	f.Fetch(ctx, "core.yaml")
}

func deferred(ctx context.Context, addresses []string, f Fetcher) []func() {
	var fns []func()
	for _, address := range addresses {
		fns = append(fns, func() { f.Fetch(ctx, address) })
	}
	return fns
}
