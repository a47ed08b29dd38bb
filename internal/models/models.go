package models

// Account is a registered user. Passwords are stored and compared as-is;
// matching the upstream contract, hashing is out of scope.
type Account struct {
	AccountID int64  `json:"account_id" db:"account_id"`
	Username  string `json:"username" db:"username"`
	Password  string `json:"password" db:"password"`
}

// Message is a text post authored by an account.
type Message struct {
	MessageID       int64  `json:"message_id" db:"message_id"`
	PostedBy        int64  `json:"posted_by" db:"posted_by"`
	MessageText     string `json:"message_text" db:"message_text"`
	TimePostedEpoch int64  `json:"time_posted_epoch" db:"time_posted_epoch"`
}
