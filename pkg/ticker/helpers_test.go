package ticker

import (
	"time"

	"github.com/swordfeng/ireina/pkg/httpclient"
	"github.com/swordfeng/ireina/pkg/logging"
)

func newTestDeps() Deps {
	return Deps{
		Client: httpclient.New(2*time.Second, "ireina-test"),
		Logger: logging.NewNoopLogger(),
		TTL:    time.Second,
	}
}
