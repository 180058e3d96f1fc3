package geo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
)

type IPAPITestSuite struct {
	suite.Suite
	handler http.HandlerFunc
	path    string
	server  *httptest.Server
	locator *IPAPI
}

func (suite *IPAPITestSuite) SetupSubTest() {
	suite.path = ""
	suite.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		suite.path = r.URL.Path
		suite.handler(w, r)
	}))
	suite.T().Cleanup(func() {
		suite.server.Close()
	})

	suite.locator = NewIPAPI(suite.server.URL, time.Second)
}

func (suite *IPAPITestSuite) respond(status int, body string) {
	suite.handler = func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}
}

func (suite *IPAPITestSuite) TestLocate() {
	suite.Run("public address", func() {
		suite.respond(http.StatusOK, `{"ip":"8.8.8.8","city":"Mountain View","country_name":"United States"}`)

		loc, err := suite.locator.Locate(context.Background(), "8.8.8.8")

		suite.NoError(err)
		suite.Equal(entity.Location{City: "Mountain View", Country: "United States"}, loc)
		suite.Equal("/8.8.8.8/json/", suite.path)
	})

	suite.Run("private address", func() {
		suite.respond(http.StatusOK, `{"city":"Berlin","country_name":"Germany"}`)

		for _, ip := range []string{"", "127.0.0.1", "10.1.2.3", "192.168.0.10", "::1", "garbage"} {
			_, err := suite.locator.Locate(context.Background(), ip)

			suite.NoError(err)
			suite.Equal("/json/", suite.path, ip)
		}
	})

	suite.Run("missing fields", func() {
		suite.respond(http.StatusOK, `{"country_name":"Germany"}`)

		loc, err := suite.locator.Locate(context.Background(), "")

		suite.NoError(err)
		suite.Equal("Unknown, Germany", loc.String())
	})

	suite.Run("api error", func() {
		suite.respond(http.StatusOK, `{"error":true,"reason":"RateLimited"}`)

		_, err := suite.locator.Locate(context.Background(), "")

		suite.Error(err)
		suite.Contains(err.Error(), "RateLimited")
	})

	suite.Run("unexpected status", func() {
		suite.respond(http.StatusTooManyRequests, `{}`)

		_, err := suite.locator.Locate(context.Background(), "")

		suite.Error(err)
	})

	suite.Run("invalid body", func() {
		suite.respond(http.StatusOK, `not json`)

		_, err := suite.locator.Locate(context.Background(), "")

		suite.Error(err)
	})

	suite.Run("context canceled", func() {
		suite.respond(http.StatusOK, `{}`)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := suite.locator.Locate(ctx, "")

		suite.ErrorIs(err, context.Canceled)
	})

	suite.Run("timeout", func() {
		suite.handler = func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
		}
		suite.locator = NewIPAPI(suite.server.URL, 20*time.Millisecond)

		_, err := suite.locator.Locate(context.Background(), "")

		suite.Error(err)
	})
}

func TestIPAPI(t *testing.T) {
	suite.Run(t, new(IPAPITestSuite))
}

func TestDisabled(t *testing.T) {
	_, err := Disabled{}.Locate(context.Background(), "8.8.8.8")

	if err != ErrDisabled {
		t.Errorf("Locate() error = %v, want %v", err, ErrDisabled)
	}
}
