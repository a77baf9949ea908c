package engine

import (
	"errors"
	"math/rand"

	"ggumjisum/backend/models"
)

// MaxQuizAttempts is the retry budget per quiz session. Exhausting it
// leaves the island sunk; a new session may be started.
const MaxQuizAttempts = 3

// ErrNoActiveQuiz is returned when answering without a running session.
var ErrNoActiveQuiz = errors.New("no active rescue quiz")

// QuizQuestion is one entry of the rescue pool.
type QuizQuestion struct {
	Category      string
	Question      string
	CorrectAnswer string
	WrongAnswers  []string
	Explanation   string
}

// QuizPool holds the rescue questions, grouped by spending category so a
// sunk island can be quizzed on what sank it.
var QuizPool = []QuizQuestion{
	{
		Category:      "coffee",
		Question:      "다음 중 가장 저렴한 커피 옵션은?",
		CorrectAnswer: "편의점 커피",
		WrongAnswers:  []string{"스타벅스 아메리카노", "카페 라떼", "프라푸치노"},
		Explanation:   "편의점 커피가 보통 1,500원 정도로 가장 저렴해요!",
	},
	{
		Category:      "coffee",
		Question:      "카페 지출을 줄이는 가장 효과적인 방법은?",
		CorrectAnswer: "텀블러 지참 할인 활용",
		WrongAnswers:  []string{"매일 프리미엄 음료 주문", "카페 구독 서비스 가입", "디저트 세트로 주문"},
		Explanation:   "텀블러를 가져가면 300~500원 할인을 받을 수 있어요!",
	},
	{
		Category:      "coffee",
		Question:      "커피값 절약을 위한 최선의 방법은?",
		CorrectAnswer: "집에서 커피 내려먹기",
		WrongAnswers:  []string{"더 비싼 카페 가기", "하루 3잔 이상 마시기", "항상 벤티 사이즈"},
		Explanation:   "집에서 커피를 내려 먹으면 한 달에 10만원 이상 절약할 수 있어요!",
	},
	{
		Category:      "food",
		Question:      "식비를 절약하는 가장 좋은 방법은?",
		CorrectAnswer: "집에서 도시락 싸가기",
		WrongAnswers:  []string{"매일 배달음식", "편의점에서 3끼", "외식 늘리기"},
		Explanation:   "도시락을 싸면 한 끼당 3,000~5,000원 절약할 수 있어요!",
	},
	{
		Category:      "food",
		Question:      "배달 앱 사용 시 절약 팁은?",
		CorrectAnswer: "최소 주문 금액 맞춰 배달비 무료",
		WrongAnswers:  []string{"1인분만 시키기", "새벽 배달 이용", "매일 다른 앱 사용"},
		Explanation:   "배달비 3,000원을 아끼면 한 달에 9만원 절약!",
	},
	{
		Category:      "food",
		Question:      "편의점 이용 시 절약 방법은?",
		CorrectAnswer: "1+1, 2+1 행사 상품 이용",
		WrongAnswers:  []string{"신상품만 구매", "포인트 쌓지 않기", "정가 상품만 구매"},
		Explanation:   "행사 상품을 활용하면 최대 50% 절약할 수 있어요!",
	},
	{
		Category:      "transport",
		Question:      "한 달 교통비를 줄이는 가장 좋은 방법은?",
		CorrectAnswer: "정기권 구매하기",
		WrongAnswers:  []string{"매일 택시 타기", "자가용 출퇴근", "킥보드 대여"},
		Explanation:   "정기권을 사면 교통비를 30% 이상 절약할 수 있어요!",
	},
	{
		Category:      "transport",
		Question:      "택시비를 줄이는 방법은?",
		CorrectAnswer: "버스나 지하철 이용",
		WrongAnswers:  []string{"심야 택시 자주 이용", "카카오 블랙 타기", "공항 리무진 이용"},
		Explanation:   "대중교통은 택시의 1/10 가격이에요!",
	},
	{
		Category:      "transport",
		Question:      "출퇴근 교통비 절약 팁은?",
		CorrectAnswer: "한 정거장 걸어서 환승",
		WrongAnswers:  []string{"택시 호출", "고속버스 이용", "렌터카 빌리기"},
		Explanation:   "조금만 걸으면 건강도 챙기고 돈도 아껴요!",
	},
	{
		Category:      "shopping",
		Question:      "충동구매를 막는 좋은 습관은?",
		CorrectAnswer: "24시간 기다려보기",
		WrongAnswers:  []string{"바로 결제하기", "친구한테 자랑하기", "더 비싼 거 사기"},
		Explanation:   "24시간 기다리면 충동이 사라지는 경우가 많아요!",
	},
	{
		Category:      "shopping",
		Question:      "온라인 쇼핑 절약 팁은?",
		CorrectAnswer: "장바구니에 담고 할인 기다리기",
		WrongAnswers:  []string{"신상품 바로 구매", "최고가 상품만", "쿠폰 사용 안 하기"},
		Explanation:   "세일 기간을 기다리면 최대 70% 할인받을 수 있어요!",
	},
	{
		Category:      "shopping",
		Question:      "의류 구매 시 절약 방법은?",
		CorrectAnswer: "시즌 오프 세일 이용",
		WrongAnswers:  []string{"신상 출시 즉시 구매", "백화점 VIP 라운지", "명품만 구매"},
		Explanation:   "시즌이 지나면 50~70% 할인된 가격에 살 수 있어요!",
	},
	{
		Category:      "general",
		Question:      "매달 고정 지출을 줄이는 방법은?",
		CorrectAnswer: "구독 서비스 정리하기",
		WrongAnswers:  []string{"구독 더 늘리기", "프리미엄 플랜 업그레이드", "자동결제 추가"},
		Explanation:   "안 쓰는 구독을 정리하면 월 3~5만원 절약!",
	},
	{
		Category:      "general",
		Question:      "예산 관리의 기본 원칙은?",
		CorrectAnswer: "수입의 50% 이하로 소비",
		WrongAnswers:  []string{"수입보다 많이 쓰기", "저축 안 하기", "카드 빚 늘리기"},
		Explanation:   "수입의 50%는 생활비, 30%는 저축, 20%는 여가가 이상적이에요!",
	},
	{
		Category:      "general",
		Question:      "소비 습관 개선을 위한 첫 단계는?",
		CorrectAnswer: "지출 기록 시작하기",
		WrongAnswers:  []string{"영수증 버리기", "통장 확인 안 하기", "현금 인출 늘리기"},
		Explanation:   "지출을 기록하면 불필요한 소비를 40% 줄일 수 있어요!",
	},
}

// QuizSession is one running attempt at the rescue quiz.
type QuizSession struct {
	question     QuizQuestion
	choices      []string
	correctIndex int
	attemptsLeft int
}

// Question returns the prompt text.
func (s *QuizSession) Question() string { return s.question.Question }

// Choices returns the shuffled answer options.
func (s *QuizSession) Choices() []string { return s.choices }

// AttemptsLeft returns the remaining retry budget.
func (s *QuizSession) AttemptsLeft() int { return s.attemptsLeft }

// AnswerResult reports the outcome of a single quiz answer.
type AnswerResult struct {
	Correct      bool   `json:"correct"`
	Explanation  string `json:"explanation"`
	AttemptsLeft int    `json:"attempts_left"`
}

// Gate manages the rescue quiz that unblocks a sunk island. The random
// source is injected so question selection and choice order are
// deterministic in tests.
type Gate struct {
	rng     *rand.Rand
	session *QuizSession
}

// NewGate builds a gate around the given random source.
func NewGate(rng *rand.Rand) *Gate {
	return &Gate{rng: rng}
}

// Session returns the active quiz session, or nil.
func (g *Gate) Session() *QuizSession { return g.session }

// StartQuiz begins a new session, preferring a question from the
// category the user spent on most in their recent transactions.
func (g *Gate) StartQuiz(recent []models.Transaction) *QuizSession {
	q := g.pickQuestion(recent)

	choices := append([]string{q.CorrectAnswer}, q.WrongAnswers...)
	g.rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})
	correct := 0
	for i, c := range choices {
		if c == q.CorrectAnswer {
			correct = i
			break
		}
	}

	g.session = &QuizSession{
		question:     q,
		choices:      choices,
		correctIndex: correct,
		attemptsLeft: MaxQuizAttempts,
	}
	return g.session
}

// pickQuestion finds the dominant category across the 10 most recent
// transactions and draws from its questions, falling back to the whole
// pool.
func (g *Gate) pickQuestion(recent []models.Transaction) QuizQuestion {
	if len(recent) > 10 {
		recent = recent[:10]
	}
	counts := make(map[string]int)
	top := ""
	for _, tx := range recent {
		counts[tx.Category]++
		if top == "" || counts[tx.Category] > counts[top] {
			top = tx.Category
		}
	}

	var pool []QuizQuestion
	for _, q := range QuizPool {
		if q.Category == top {
			pool = append(pool, q)
		}
	}
	if len(pool) == 0 {
		pool = QuizPool
	}
	return pool[g.rng.Intn(len(pool))]
}

// Answer checks the chosen index against the session. A correct answer
// ends the session (the caller restores the island); a wrong answer
// burns one attempt, and the session ends when the budget is exhausted.
func (g *Gate) Answer(choice int) (AnswerResult, error) {
	s := g.session
	if s == nil {
		return AnswerResult{}, ErrNoActiveQuiz
	}

	s.attemptsLeft--
	result := AnswerResult{
		Correct:      choice == s.correctIndex,
		Explanation:  s.question.Explanation,
		AttemptsLeft: s.attemptsLeft,
	}

	if result.Correct || s.attemptsLeft <= 0 {
		g.session = nil
	}
	return result, nil
}
