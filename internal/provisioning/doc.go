// Package provisioning drives a migration run against the target server.
//
// The orchestrator sequences per-user provisioning strictly in input
// order: probe server capabilities once, resolve the library selector
// once, then for each user create the account, assign roles and
// libraries, and upload an avatar, pausing between users to respect
// the server's rate limits. Every processed record yields exactly one
// Outcome; per-user failures after account creation are recorded and
// never abort the run.
package provisioning
