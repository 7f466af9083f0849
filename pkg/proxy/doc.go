// Package proxy translates upstream outcomes into client responses. It
// guarantees the client always receives a well-formed JSON response with a
// meaningful HTTP status, regardless of what the upstream returned or
// whether it was reachable at all.
package proxy
