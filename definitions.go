package nntpframe

// NNTP response codes that matter for framing, as defined in RFC 3977 and RFC 2980.
const (
	StatusHelpText          = 100 // Help text follows
	StatusCapabilities      = 101 // Capability list follows
	StatusGroupSelected     = 211 // Group selected, or article numbers follow after LISTGROUP
	StatusListFollows       = 215 // Information follows (LIST)
	StatusArticleFollows    = 220 // Article follows
	StatusHeadFollows       = 221 // Headers follow
	StatusBodyFollows       = 222 // Body follows
	StatusOverviewFollows   = 224 // Overview information follows (OVER/XOVER)
	StatusHeadersFollow     = 225 // Headers follow (HDR)
	StatusNewArticlesFollow = 230 // List of new articles follows (NEWNEWS)
	StatusNewGroupsFollow   = 231 // List of new newsgroups follows (NEWGROUPS)
)

// statusCodeLen is the width of every NNTP status code on the wire.
const statusCodeLen = 3

// listGroupKeyword is the only command whose 211 reply is multi-line.
const listGroupKeyword = "LISTGROUP"

const quitCommand = "QUIT\r\n"
