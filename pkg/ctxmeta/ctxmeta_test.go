package ctxmeta_test

import (
	"context"
	"testing"

	"github.com/Gunvolt24/purchase-order/pkg/ctxmeta"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	type foreignKey struct{}

	tests := []struct {
		name   string
		ctx    func() context.Context
		wantID string
		wantOK bool
	}{
		{
			name:   "stored",
			ctx:    func() context.Context { return ctxmeta.WithRequestID(context.Background(), "req-123") },
			wantID: "req-123", wantOK: true,
		},
		{
			name: "innermost wins",
			ctx: func() context.Context {
				return ctxmeta.WithRequestID(ctxmeta.WithRequestID(context.Background(), "outer"), "inner")
			},
			wantID: "inner", wantOK: true,
		},
		{
			name: "empty stored value is absent",
			ctx:  func() context.Context { return context.WithValue(context.Background(), ctxmeta.KeyRequestID, "") },
		},
		{
			name: "foreign key ignored",
			ctx:  func() context.Context { return context.WithValue(context.Background(), foreignKey{}, "req-xyz") },
		},
		{
			name: "nil context",
			ctx:  func() context.Context { return nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ctxmeta.RequestIDFromContext(tt.ctx())
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.wantID, id)
		})
	}
}

func TestWithRequestID_NoOp(t *testing.T) {
	parent := context.Background()
	require.Equal(t, parent, ctxmeta.WithRequestID(parent, ""))

	var nilCtx context.Context
	require.Nil(t, ctxmeta.WithRequestID(nilCtx, "req-1"))

	// родитель не меняется
	_ = ctxmeta.WithRequestID(parent, "req-2")
	_, ok := ctxmeta.RequestIDFromContext(parent)
	require.False(t, ok)
}

func TestFields_RequestIDOnly(t *testing.T) {
	ctx := ctxmeta.WithRequestID(context.Background(), "po-req")
	require.Equal(t, []any{"request_id", "po-req"}, ctxmeta.Fields(ctx))
}
