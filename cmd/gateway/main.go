// The VendorLink gateway proxies client requests to the platform's general
// backend and AI backend, resolves caller identity from the session store,
// and relays the Outlook OAuth callback flow.
//
// Usage:
//
//	# Start with default configuration
//	gateway run
//
//	# Start with a custom configuration file
//	gateway run --config /etc/vendorlink/gateway.yaml
//
//	# Show version information
//	gateway version
package main

func main() {
	Execute()
}
