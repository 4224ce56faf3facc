// Package cart はクライアント側で保持するカートを扱う。
// サーバーはカートを持たず、注文作成時に内容をまとめて受け取る。
package cart

import "encoding/json"

const storageKey = "cart"

// カート1行分。商品のスナップショットと個数。
type Item struct {
	ProductID   int64   `json:"_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Count       int     `json:"count"`
}

// Storeの上でカートを読み書きする。storeがnilなら全操作は黙って何もしない。
type Manager struct {
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

func (m *Manager) load() []Item {
	if m.store == nil {
		return nil
	}
	raw, ok := m.store.Get(storageKey)
	if !ok {
		return nil
	}

	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		//壊れたデータは空扱い
		return nil
	}
	return items
}

func (m *Manager) save(items []Item) {
	if m.store == nil {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	m.store.Set(storageKey, string(raw))
}

// 追加。既にある商品なら何もしない（最初の1件が勝つ）。
func (m *Manager) Add(item Item) {
	if m.store == nil {
		return
	}

	items := m.load()
	for _, it := range items {
		if it.ProductID == item.ProductID {
			return
		}
	}

	//個数は常に1で入る。増やすのはUpdateQuantity。
	item.Count = 1
	items = append(items, item)
	m.save(items)
}

// 個数変更。1未満は1に切り上げる。
func (m *Manager) UpdateQuantity(productID int64, count int) {
	if m.store == nil {
		return
	}
	if count < 1 {
		count = 1
	}

	items := m.load()
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Count = count
		}
	}
	m.save(items)
}

// 削除して残った一覧を返す。
func (m *Manager) Remove(productID int64) []Item {
	if m.store == nil {
		return []Item{}
	}

	items := m.load()
	kept := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	m.save(kept)
	return kept
}

// カート内の商品種類数（個数ではない）
func (m *Manager) Total() int {
	return len(m.load())
}

func (m *Manager) Items() []Item {
	return m.load()
}

// 合計金額 Σ count×price
func (m *Manager) OrderTotal() float64 {
	var total float64
	for _, it := range m.load() {
		total += float64(it.Count) * it.Price
	}
	return total
}

// 全消去。消去後にnextを呼ぶ（画面更新などに使う）。
func (m *Manager) Clear(next func()) {
	if m.store != nil {
		m.store.Remove(storageKey)
	}
	if next != nil {
		next()
	}
}
