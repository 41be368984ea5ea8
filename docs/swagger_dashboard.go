package docs

// @title           Ride Analytics Dashboard API
// @version         1.0
// @description     Upload ride booking exports, filter them by status, vehicle, date range and payment method, and read back metrics, aggregates and chart URLs.

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token returned by the upload.
