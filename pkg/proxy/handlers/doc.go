// Package handlers contains the per-resource HTTP entry points of the
// gateway: generic pass-through proxying, the AI project routes, the cached
// segments listing, and the Outlook OAuth callback and disconnect flows.
package handlers
