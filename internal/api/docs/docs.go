// Package docs holds the swagger instances served under /swagger/ by each
// service. Keep the templates in step with the handler annotations.
package docs

import "github.com/swaggo/swag"

func init() {
	swag.Register(SwaggerInfoAuth.InstanceName(), SwaggerInfoAuth)
	swag.Register(SwaggerInfoEvents.InstanceName(), SwaggerInfoEvents)
}
