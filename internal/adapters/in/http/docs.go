package http

import (
	"pricing/internal/generated/servers"

	"github.com/swaggo/swag"
)

// apiDoc serves the generated OpenAPI contract to the swagger UI.
type apiDoc struct{}

func (apiDoc) ReadDoc() string {
	doc, err := openAPIDocument()
	if err != nil {
		return "{}"
	}
	return string(doc)
}

func init() {
	swag.Register(swag.Name, apiDoc{})
}

func openAPIDocument() ([]byte, error) {
	swagger, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	return swagger.MarshalJSON()
}
