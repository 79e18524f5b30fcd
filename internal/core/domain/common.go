package domain

// AllBusinesses reports whether a business filter selects every business.
func AllBusinesses(businessID string) bool {
	return businessID == "" || businessID == BusinessAll
}

// MatchesBusiness reports whether a record owned by ownerID passes the filter.
func MatchesBusiness(filter, ownerID string) bool {
	return AllBusinesses(filter) || filter == ownerID
}

// AllAccounts reports whether an account code filter selects every account.
func AllAccounts(code string) bool {
	return code == "" || code == "all"
}
