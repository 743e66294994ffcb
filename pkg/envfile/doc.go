// Package envfile reads and writes KEY=VALUE env files and watches them for
// changes.
//
// Parsing and serialization are delegated to github.com/joho/godotenv; this
// package adds missing-file classification (ErrNotFound) and an
// fsnotify-based Watcher that debounces bursts of writes into single change
// notifications.
package envfile
