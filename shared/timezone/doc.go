// Package timezone renders timestamps in the application timezone.
//
// The zone is configured through APP_TIMEZONE using IANA names such as
// "UTC", "Asia/Jakarta" or "America/New_York" and installed once at startup:
//
//	timezone.Init(cfg.App.Timezone)
//	formatted := timezone.Format(todo.CreatedAt, constant.DateFormat)
//
// Until Init runs every helper works in UTC.
package timezone
