package model

// AuthorityTier classifies a source URL by the kind of publisher
// behind it. Classification is purely syntactic (domain and path
// matching) and never involves fetching the URL.
type AuthorityTier int

const (
	TierUnknown   AuthorityTier = 0 // not classified
	TierPrimary   AuthorityTier = 1 // laws, statutes, academic papers, official documents
	TierSecondary AuthorityTier = 2 // encyclopedias, major publishers, reputable media
	TierTertiary  AuthorityTier = 3 // blogs, personal websites, aggregators
)

func (t AuthorityTier) String() string {
	switch t {
	case TierPrimary:
		return "primary"
	case TierSecondary:
		return "secondary"
	case TierTertiary:
		return "tertiary"
	default:
		return "unknown"
	}
}
