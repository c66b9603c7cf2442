// Package sensiboclient constructs a Sensibo API v2 client that implements
// the sensibo.Client interface.
//
// Quick start
//
//	cli, err := sensiboclient.NewWithAPIKey(os.Getenv("SENSIBO_API_KEY"))
//	if err != nil { log.Fatal(err) }
//	defer cli.Close()
//
//	pods, err := cli.ListDevices(ctx)
//
// To share a transport with the rest of an application, pass it through
// sensibo.Config.HTTPClient. The client then borrows it and Close leaves it
// open:
//
//	cli, err := sensiboclient.New(&sensibo.Config{
//	  APIKey:     key,
//	  HTTPClient: sharedHTTPClient,
//	})
//
// BaseURL may omit the scheme, in which case https is assumed.
package sensiboclient
