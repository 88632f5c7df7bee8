// Package session persists the signed-in user's bearer token and identity
// between runs.
//
// Two implementations satisfy the same Load/Save/Clear contract:
//
//   - SQLiteRepository stores the record as two key/value rows ("token",
//     "user") in the CLI's local database, written in one transaction.
//   - RedisRepository stores one JSON record per browser session under
//     portal:session:<sid>, with a sliding TTL, for the web portal.
//
// Load returns (nil, nil) when nothing is stored. A partially written
// record (token without user or the reverse) is returned as-is; deciding
// whether it is usable belongs to the caller.
package session
