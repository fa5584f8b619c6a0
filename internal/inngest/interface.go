package inngest

import "net/http"

type InngestClient interface {
	Serve() http.Handler
}

// Expirer is implemented by the invitation and challenge stores.
type Expirer interface {
	ExpireStale() (int, error)
}
