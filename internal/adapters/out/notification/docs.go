// Package notification implements ports.NotificationChannel.
//
// RedisChannel publishes every message on a Redis Pub/Sub channel as JSON so that any number of
// subscribers (mailers, dashboards) can fan it out further. LogChannel writes the message to the
// structured log and is used when no Redis is configured.
package notification
