package domain

import "context"

type tabKey struct{}

// ContextWithTab binds the browser tab id to ctx
func ContextWithTab(ctx context.Context, tabID string) context.Context {
	return context.WithValue(ctx, tabKey{}, tabID)
}

// TabFromContext returns the tab bound by ContextWithTab, or ""
func TabFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(tabKey{}).(string); ok {
		return v
	}
	return ""
}
