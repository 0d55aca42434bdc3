package rank

type Request struct {
	Limit int
}

type Entry struct {
	UserID       string `json:"user_id"`
	Username     string `json:"username,omitempty"`
	Tier         string `json:"tier"`
	Level        int    `json:"level"`
	Experience   int    `json:"experience"`
	SpiritStones int    `json:"spirit_stones"`
}

type Response struct {
	Entries []Entry `json:"entries"`
}
