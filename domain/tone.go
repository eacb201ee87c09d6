package domain

// ToneManner describes the voice a generated message should be written in.
// The catalog is fixed, tones are not stored in the database.
type ToneManner struct {
	ID          string `json:"toneId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Example     string `json:"example"`
}

const (
	ToneFriendly     = "TONE001"
	TonePolite       = "TONE002"
	ToneHumorous     = "TONE003"
	ToneProfessional = "TONE004"
	ToneUrgent       = "TONE005"
)

var toneCatalog = []ToneManner{
	{
		ID:          ToneFriendly,
		Name:        "친근한",
		Description: "친구처럼 편안하고 다정한 말투",
		Example:     "안녕하세요! 고객님께 딱 맞는 혜택을 가져왔어요 :)",
	},
	{
		ID:          TonePolite,
		Name:        "공손한",
		Description: "격식을 갖춘 정중하고 예의 바른 말투",
		Example:     "고객님께 안내드립니다. 준비된 혜택을 확인해 주시기 바랍니다.",
	},
	{
		ID:          ToneHumorous,
		Name:        "유머러스한",
		Description: "재치 있고 유쾌한 말투",
		Example:     "이 혜택 놓치면 진짜 후회각! 지금 바로 확인해보세요~",
	},
	{
		ID:          ToneProfessional,
		Name:        "전문적인",
		Description: "신뢰감을 주는 전문가다운 말투",
		Example:     "고객님의 사용 패턴 분석 결과, 최적의 요금제를 안내드립니다.",
	},
	{
		ID:          ToneUrgent,
		Name:        "긴급한",
		Description: "시급함과 한정성을 강조하는 말투",
		Example:     "오늘 자정 마감! 지금 신청하지 않으면 혜택이 사라집니다.",
	},
}

// Tones returns the full tone catalog in display order.
func Tones() []ToneManner {
	out := make([]ToneManner, len(toneCatalog))
	copy(out, toneCatalog)
	return out
}

// ToneByID looks up a tone. Unknown ids fall back to the friendly tone so a
// bad toneId never blocks message generation.
func ToneByID(id string) ToneManner {
	for _, t := range toneCatalog {
		if t.ID == id {
			return t
		}
	}
	return toneCatalog[0]
}

// IsKnownTone reports whether the id exists in the catalog.
func IsKnownTone(id string) bool {
	for _, t := range toneCatalog {
		if t.ID == id {
			return true
		}
	}
	return false
}
