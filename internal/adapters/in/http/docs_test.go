package http_test

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"github.com/getkin/kin-openapi/openapi2"
)

var echoParam = regexp.MustCompile(`:([A-Za-z]+)`)

func (s *ServerTestSuite) TestAPIDocsDescribeEveryRoute() {
	rec := s.do(http.MethodGet, "/swagger/doc.json", nil, "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var doc openapi2.T
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &doc))
	s.Equal("2.0", doc.Swagger)
	s.Equal("/api/v1", doc.BasePath)
	s.Equal("Order Fulfillment API", doc.Info.Title)

	documented := 0
	for _, route := range s.echo.Routes() {
		if !strings.HasPrefix(route.Path, doc.BasePath+"/") {
			continue
		}
		switch route.Method {
		case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
		default:
			continue
		}

		path := echoParam.ReplaceAllString(strings.TrimPrefix(route.Path, doc.BasePath), "{$1}")
		item, ok := doc.Paths[path]
		if !s.Truef(ok, "%s is not documented", path) {
			continue
		}
		s.NotNilf(item.GetOperation(route.Method), "%s %s is not documented", route.Method, path)
		documented++
	}
	s.Equal(22, documented)
}
