// Package redis connects to Redis and keeps application drafts there.
//
// Connect validates a redis:// or rediss:// URL, pings with retries and
// returns a ready client. Healthcheck wraps a ping for readiness checks.
//
// DraftStore implements submission.DraftStore. Each account has a single key
// holding its draft as JSON; saving refreshes the TTL, so an abandoned draft
// disappears after the configured period.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	drafts := redis.NewDraftStoreFromConfig(client, cfg)
//	svc := submission.NewService(applications, drafts, log)
package redis
