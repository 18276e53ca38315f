package mock

import (
	"context"

	"github.com/fwojciec/h2wp"
)

// Compile-time interface verification.
var (
	_ h2wp.AssetResolver = (*AssetResolver)(nil)
	_ h2wp.AssetRewriter = (*AssetRewriter)(nil)
)

// AssetResolver is a mock implementation of h2wp.AssetResolver.
type AssetResolver struct {
	ResolveFn func(ctx context.Context, ref string) h2wp.AssetResolution
}

func (r *AssetResolver) Resolve(ctx context.Context, ref string) h2wp.AssetResolution {
	return r.ResolveFn(ctx, ref)
}

// AssetRewriter is a mock implementation of h2wp.AssetRewriter.
type AssetRewriter struct {
	RewriteFn func(ctx context.Context, html string, resolver h2wp.AssetResolver) (*h2wp.RewriteResult, error)
}

func (r *AssetRewriter) Rewrite(ctx context.Context, html string, resolver h2wp.AssetResolver) (*h2wp.RewriteResult, error) {
	return r.RewriteFn(ctx, html, resolver)
}
