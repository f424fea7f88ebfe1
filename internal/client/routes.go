package client

import (
	"net/url"
	"strings"
)

const apiPrefix = "/api/v1"

// Routes of the ledger API. "{id}" is replaced by Path.
const (
	RouteNodeInfo              = "/"
	RouteAccount               = apiPrefix + "/accounts/{id}"
	RouteAccountOperations     = apiPrefix + "/accounts/{id}/operations"
	RouteAccountFrozenAccounts = apiPrefix + "/accounts/{id}/frozen-accounts"
	RouteFrozenAccounts        = apiPrefix + "/frozen-accounts"
	RouteTransactions          = apiPrefix + "/transactions"
	RouteTransaction           = apiPrefix + "/transactions/{id}"
	RouteTransactionOperations = apiPrefix + "/transactions/{id}/operations"
	RouteBlocks                = apiPrefix + "/blocks"
	RouteBlock                 = apiPrefix + "/blocks/{id}"
)

// Path fills the "{id}" placeholder of route with the escaped id.
func Path(route, id string) string {
	return strings.Replace(route, "{id}", url.PathEscape(id), 1)
}

// endpointLabel maps a request path to its route template so that metric
// labels do not carry hashes or addresses.
func endpointLabel(path string) string {
	if u, err := url.Parse(path); err == nil {
		path = u.Path
	}
	path = strings.Trim(strings.TrimPrefix(path, apiPrefix), "/")
	if path == "" {
		return "node"
	}

	segments := strings.Split(path, "/")
	for i := range segments {
		if i%2 == 1 {
			segments[i] = "{id}"
		}
	}
	return strings.Join(segments, "/")
}
