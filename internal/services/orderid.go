package services

import (
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	orderIDPrefix = "#"
	orderIDLength = 10
	// Число случайных значений, подмешиваемых к каждой миллисекунде.
	orderIDEntropy = 36
)

// OrderIDGenerator выдаёт короткие упорядоченные по времени идентификаторы заказов
// вида "#" + 9 символов base36. В пределах одного экземпляра значения строго возрастают.
type OrderIDGenerator struct {
	mu   sync.Mutex
	now  func() time.Time
	rand *rand.Rand
	last int64
}

func NewOrderIDGenerator() *OrderIDGenerator {
	return &OrderIDGenerator{
		now:  time.Now,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewID возвращает очередной идентификатор.
func (g *OrderIDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	value := g.now().UnixMilli()*orderIDEntropy + g.rand.Int63n(orderIDEntropy)
	// Часы не сдвинулись или ушли назад: продолжаем последовательность.
	if value <= g.last {
		value = g.last + 1
	}
	g.last = value

	encoded := strings.ToUpper(strconv.FormatInt(value, 36))
	if width := orderIDLength - len(orderIDPrefix); len(encoded) < width {
		encoded = strings.Repeat("0", width-len(encoded)) + encoded
	} else if len(encoded) > width {
		encoded = encoded[len(encoded)-width:]
	}

	return orderIDPrefix + encoded
}

// NormalizeOrderID приводит идентификатор из URL к хранимому виду: "#" в начале необязателен.
func NormalizeOrderID(orderID string) string {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" || strings.HasPrefix(orderID, orderIDPrefix) {
		return orderID
	}
	return orderIDPrefix + orderID
}
