package bootstrap

import "github.com/yourusername/team-hub/internal/store"

// defaultSeedEntries はカタログ新規作成時に投入する選手データを返します。
// 起動後は読み取り専用の参照データで、アカウント・セッションのロジックから
// 変更されることはありません。
func defaultSeedEntries() []store.Document {
	return []store.Document{
		{
			"name":      "Rohit Sharma",
			"role":      "Captain • Batsman",
			"batting":   "Right-handed",
			"runs":      542,
			"average":   38.7,
			"image":     "Rohit Sharma.png",
			"country":   "India",
			"isCaptain": true,
		},
		{
			"name":    "Jasprit Bumrah",
			"role":    "Bowler",
			"bowling": "Right-arm Fast",
			"wickets": 18,
			"economy": 7.2,
			"image":   "Jasprit Bumrah.png",
			"country": "India",
		},
		{
			"name":    "Hardik Pandya",
			"role":    "All-rounder",
			"batting": "Right-handed",
			"runs":    298,
			"wickets": 12,
			"image":   "Hardik Pandya.png",
			"country": "India",
		},
		{
			"name":    "Ishan Kishan",
			"role":    "Wicket-keeper",
			"batting": "Left-handed",
			"runs":    421,
			"catches": 15,
			"image":   "Ishan Kishan.png",
			"country": "India",
		},
	}
}
