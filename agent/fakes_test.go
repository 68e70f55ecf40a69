package agent

import (
	"context"
	"sync"
)

type fakeGenerator struct {
	GenerateFunc func(ctx context.Context, prompt string, params GenerationParams) (string, error)

	mu      sync.Mutex
	prompts []string
	params  []GenerationParams
	closed  int
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, params GenerationParams) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.params = append(f.params, params)
	f.mu.Unlock()

	if f.GenerateFunc != nil {
		return f.GenerateFunc(ctx, prompt, params)
	}
	return "generated text", nil
}

func (f *fakeGenerator) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}

func (f *fakeGenerator) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

type fakeEmbedder struct {
	// vectors by exact input text; Default is used for anything else
	Vectors   map[string][]float32
	Default   []float32
	EmbedFunc func(ctx context.Context, text string) ([]float32, error)

	mu     sync.Mutex
	texts  []string
	closed int
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	f.texts = append(f.texts, text)
	f.mu.Unlock()

	if f.EmbedFunc != nil {
		return f.EmbedFunc(ctx, text)
	}
	if v, ok := f.Vectors[text]; ok {
		return v, nil
	}
	return f.Default, nil
}

func (f *fakeEmbedder) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}

func generatorFactory(g TextGenerator, err error) GeneratorFactory {
	return func(context.Context) (TextGenerator, error) {
		if err != nil {
			return nil, err
		}
		return g, nil
	}
}

func embedderFactory(e Embedder, err error) EmbedderFactory {
	return func(context.Context) (Embedder, error) {
		if err != nil {
			return nil, err
		}
		return e, nil
	}
}

func fixedJitter(n int) JitterFunc {
	return func() int { return n }
}

// readyService returns an initialized service over the given fakes
func readyService(gen *fakeGenerator, emb *fakeEmbedder, opts ...Option) *Service {
	svc := NewService(generatorFactory(gen, nil), embedderFactory(emb, nil), opts...)
	svc.Initialize(context.Background())
	return svc
}
