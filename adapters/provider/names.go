package provider

// chainName maps well-known chain ids to their human-readable network name.
// Unknown chains get an empty name; callers fall back to "unknown".
func chainName(id int64) string {
	switch id {
	case 1:
		return "mainnet"
	case 10:
		return "optimism"
	case 56:
		return "bnb"
	case 137:
		return "polygon"
	case 8453:
		return "base"
	case 42161:
		return "arbitrum"
	case 11155111:
		return "sepolia"
	case 17000:
		return "holesky"
	case 31337:
		return "localhost"
	default:
		return ""
	}
}
