package endpoint

// Operation is a stable identifier for "which external capability am I
// invoking", independent of the physical URL that backs it.
type Operation string

const (
	// OAuth operations.
	OpAuthorize Operation = "authorize"
	OpToken     Operation = "token"
	OpUserInfo  Operation = "userinfo"

	// Data-plane API bases consumed by the fetch aggregator.
	OpGamesAPI      Operation = "games-api"
	OpUsersAPI      Operation = "users-api"
	OpThumbnailsAPI Operation = "thumbnails-api"
)

// Operations lists every known operation, in warmup order.
func Operations() []Operation {
	return []Operation{
		OpAuthorize,
		OpToken,
		OpUserInfo,
		OpGamesAPI,
		OpUsersAPI,
		OpThumbnailsAPI,
	}
}
