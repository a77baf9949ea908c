// Package nlp turns free-form Korean spending text into structured
// transactions, with a rule-based parser and an optional remote model.
package nlp

// Income keywords are split by strength: strong keywords are unambiguous
// income nouns and win on their own; weak keywords are verbs that only
// count when they sit next to the amount.
var StrongIncomeKeywords = []string{
	"용돈", "월급", "알바비", "수입", "환불", "입금", "이체받", "페이백", "캐시백",
}

var WeakIncomeKeywords = []string{
	"받았", "벌었", "들어왔", "받음", "받아", "받아서",
}

// CategoryEtc is the zero-match fallback; it is not part of the
// enumerated inference order.
const CategoryEtc = "etc"

// Categories fixes the inference order. Ties in keyword match counts
// resolve to the earliest category in this slice.
var Categories = []string{
	"coffee", "food", "transport", "drink", "shopping", "entertainment", "health",
}

// CategoryKeywords maps each category to its keyword set. Slice order is
// meaningful: when several matched keywords share the longest length, the
// first one listed becomes the description.
var CategoryKeywords = map[string][]string{
	"coffee": {
		"커피", "스타벅스", "카페", "이디야", "투썸", "아메리카노", "라떼",
		"카푸치노", "에스프레소", "카페라떼", "빽다방", "메가커피", "컴포즈",
		"탐앤탐스", "할리스", "엔제리너스", "파스쿠찌",
	},
	"food": {
		"밥", "식사", "점심", "저녁", "아침", "배달", "요기요", "배민", "배달의민족",
		"쿠팡이츠", "편의점", "GS25", "CU", "세븐일레븐", "마트", "라면", "김밥",
		"떡볶이", "치킨", "피자", "햄버거", "맥도날드", "버거킹", "롯데리아",
		"도시락", "김치찌개", "삼겹살", "회", "초밥", "족발", "보쌈", "국밥",
	},
	"transport": {
		"택시", "버스", "지하철", "교통", "카카오택시", "KTX", "고속버스",
		"티머니", "캐시비", "교통카드", "우버", "따릉이", "킥보드", "주차",
		"톨비", "기름", "주유", "기름값",
	},
	"drink": {
		"술", "맥주", "소주", "와인", "포장마차", "막걸리", "위스키", "양주",
		"칵테일", "하이볼", "호프", "치맥", "생맥주", "병맥주",
	},
	"shopping": {
		"쇼핑", "옷", "신발", "쿠팡", "올리브영", "다이소", "무신사", "에이블리",
		"지그재그", "29CM", "SSG", "롯데백화점", "현대백화점", "코스메틱",
		"화장품", "가방", "시계", "액세서리", "반지", "목걸이",
	},
	"entertainment": {
		"영화", "게임", "넷플릭스", "유튜브", "노래방", "PC방", "피시방",
		"CGV", "롯데시네마", "메가박스", "왓챠", "디즈니플러스", "티빙",
		"스팀", "플레이스테이션", "닌텐도", "볼링", "당구", "스크린골프",
	},
	"health": {
		"병원", "약국", "약", "헬스", "필라테스", "요가", "운동", "짐",
		"피트니스", "크로스핏", "의료", "치과", "안과", "피부과", "한의원",
		"영양제", "비타민",
	},
}

// Particles are Korean postpositions; they attach to word ends, so the
// parser strips them suffix-position aware.
var Particles = []string{
	"에서", "에게", "한테", "께", "이랑", "하고", "과", "와",
	"이", "가", "을", "를", "의", "도", "만", "에", "로",
	"으로", "부터", "까지", "처럼", "같이", "보다", "으", "고",
}

// FillerWords are conversational noise stripped word-boundary aware.
var FillerWords = []string{
	"아니", "그냥", "좀", "막", "진짜", "완전", "엄청", "나", "내", "우리", "저", "제",
}

// CategoryEmoji maps categories to their display emoji.
var CategoryEmoji = map[string]string{
	"coffee":        "☕",
	"food":          "🍚",
	"transport":     "🚕",
	"drink":         "🍺",
	"shopping":      "🛍️",
	"entertainment": "🎮",
	"health":        "💊",
	"etc":           "💸",
}

// CategoryNames maps categories to their Korean display names, also used
// as the description of last resort.
var CategoryNames = map[string]string{
	"coffee":        "커피",
	"food":          "식비",
	"transport":     "교통",
	"drink":         "술",
	"shopping":      "쇼핑",
	"entertainment": "여가",
	"health":        "건강",
	"etc":           "기타",
}

// KnownCategory reports whether c is an enumerated category or the etc
// fallback.
func KnownCategory(c string) bool {
	if c == CategoryEtc {
		return true
	}
	_, ok := CategoryKeywords[c]
	return ok
}
