package model

type LeaderboardEntry struct {
	Rank        int
	UserID      int64
	DisplayName string
	Score       int64
}

type LeaderboardPage struct {
	Page    int
	Size    int
	Entries []LeaderboardEntry
}

type Friend struct {
	UserID      int64
	DisplayName string
	TotalBond   int64
}
