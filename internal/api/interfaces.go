// interfaces.go - Handler interface definitions
package api

import "github.com/labstack/echo/v4"

// UploadHandler handles archive upload and inspection requests.
type UploadHandler interface {
	HandleUpload(c echo.Context) error
	HandleUploadMsgpack(c echo.Context) error
}

// HealthHandler handles liveness probes.
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}
