package sensibo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/sensibo/pkg/sensibo"
)

type capturingLogger struct {
	debug []string
	errs  []string
}

func (l *capturingLogger) Debug(msg string, _ map[string]interface{}) { l.debug = append(l.debug, msg) }
func (l *capturingLogger) Info(string, map[string]interface{})        {}
func (l *capturingLogger) Warn(string, map[string]interface{})        {}
func (l *capturingLogger) Error(msg string, _ map[string]interface{}) { l.errs = append(l.errs, msg) }

func TestInterceptorChain_RequestInterceptors(t *testing.T) {
	t.Parallel()

	chain := sensibo.NewInterceptorChain()

	var executionOrder []string

	chain.AddRequestInterceptor(func(ctx context.Context, req *sensibo.Request) error {
		executionOrder = append(executionOrder, "first")

		return nil
	})
	chain.AddRequestInterceptor(func(ctx context.Context, req *sensibo.Request) error {
		executionOrder = append(executionOrder, "second")

		return nil
	})

	err := chain.ExecuteRequestInterceptors(context.Background(), &sensibo.Request{Method: "GET", Path: "/pods/x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, executionOrder)
}

func TestInterceptorChain_StopsOnError(t *testing.T) {
	t.Parallel()

	chain := sensibo.NewInterceptorChain()
	errStop := errors.New("stop")
	called := false

	chain.AddResponseInterceptor(func(ctx context.Context, req *sensibo.Request, resp *sensibo.Response) error {
		return errStop
	})
	chain.AddResponseInterceptor(func(ctx context.Context, req *sensibo.Request, resp *sensibo.Response) error {
		called = true

		return nil
	})

	err := chain.ExecuteResponseInterceptors(context.Background(), &sensibo.Request{}, &sensibo.Response{StatusCode: 200})
	require.ErrorIs(t, err, errStop)
	assert.False(t, called)
}

func TestHeaderInterceptor(t *testing.T) {
	t.Parallel()

	interceptor := sensibo.HeaderInterceptor(map[string]string{"X-Request-ID": "123456"})
	req := &sensibo.Request{Method: "GET", Path: "/users/me/pods"}

	require.NoError(t, interceptor(context.Background(), req))
	assert.Equal(t, "123456", req.Headers.Get("X-Request-ID"))
}

func TestLoggingInterceptors(t *testing.T) {
	t.Parallel()

	logger := &capturingLogger{}
	req := &sensibo.Request{Method: "PATCH", Path: "/pods/x/acStates/on"}

	require.NoError(t, sensibo.LoggingInterceptor(logger)(context.Background(), req))
	require.NoError(t, sensibo.LoggingResponseInterceptor(logger)(context.Background(), req, &sensibo.Response{StatusCode: 200}))
	require.NoError(t, sensibo.LoggingResponseInterceptor(logger)(context.Background(), req, &sensibo.Response{
		StatusCode: 500,
		Error:      errors.New("server error"),
	}))

	assert.Equal(t, []string{"API Request", "API Response"}, logger.debug)
	assert.Equal(t, []string{"API Response Error"}, logger.errs)
}
