// Package sensibo provides types, interfaces, and helpers for working with the
// Sensibo cloud API v2 (https://home.sensibo.com/api/v2).
//
// # Overview
//
// The package defines the Client interface, its configuration, the error
// taxonomy, and thin JSON types (Device, Measurement, ACState, ACStateLog).
// The payloads are kept as generic JSON objects and passed through exactly as
// the server returned them, limited only by the server-side field selectors.
// A concrete implementation is provided by the sensiboclient package.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/sensibo/pkg/sensibo"
//	  "github.com/fivetwenty-io/sensibo/pkg/sensiboclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := sensiboclient.New(&sensibo.Config{APIKey: "..."})
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close()
//
//	  pods, err := cli.ListDevices(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = pods
//	}
//
// # Errors
//
// Failures reported by the service are *APIError values whose Kind tells a
// non-2xx status, an undecodable body, and an envelope without a usable
// result apart. Transport failures (DNS, refused connections, cancelled
// contexts) are returned wrapped but untranslated. Helpers such as IsNotFound
// and IsUnauthorized cover the common cases.
//
// # Interceptors
//
// InterceptorChain runs caller-supplied hooks around every request, e.g. for
// logging or extra headers. The client never retries a request.
package sensibo
