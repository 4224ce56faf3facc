package cart_test

import (
	"path/filepath"
	"testing"

	"app/internal/cart"

	"github.com/stretchr/testify/assert"
)

func newCart() (*cart.Manager, *cart.MemoryStore) {
	store := cart.NewMemoryStore()
	return cart.NewManager(store), store
}

func TestCart_Add_AlwaysStartsAtOne(t *testing.T) {
	m, _ := newCart()

	//呼び出し側がcountを渡しても新規追加は常に1で入る
	m.Add(cart.Item{ProductID: 1, Name: "Phone", Price: 10, Count: 5})

	items := m.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Count)
}

func TestCart_Add_DeduplicatesByProductID(t *testing.T) {
	m, _ := newCart()

	m.Add(cart.Item{ProductID: 1, Name: "Phone", Price: 10})
	//同じ商品の再追加は無視される（最初の1件が勝つ）
	m.Add(cart.Item{ProductID: 1, Name: "Phone", Price: 10})
	m.Add(cart.Item{ProductID: 2, Name: "Case", Price: 5})

	assert.Equal(t, 2, m.Total())

	items := m.Items()
	assert.Equal(t, 1, items[0].Count)
}

func TestCart_OrderTotal(t *testing.T) {
	m, _ := newCart()

	m.Add(cart.Item{ProductID: 1, Price: 10})
	m.Add(cart.Item{ProductID: 2, Price: 5})
	m.UpdateQuantity(1, 2)

	assert.Equal(t, 25.0, m.OrderTotal())
}

func TestCart_UpdateQuantity_FloorsAtOne(t *testing.T) {
	m, _ := newCart()

	m.Add(cart.Item{ProductID: 1, Price: 10})
	m.UpdateQuantity(1, 3)
	assert.Equal(t, 3, m.Items()[0].Count)

	m.UpdateQuantity(1, 0)
	assert.Equal(t, 1, m.Items()[0].Count)

	m.UpdateQuantity(1, -5)
	assert.Equal(t, 1, m.Items()[0].Count)
}

func TestCart_Remove_ReturnsRemainder(t *testing.T) {
	m, _ := newCart()

	m.Add(cart.Item{ProductID: 1, Price: 10})
	m.Add(cart.Item{ProductID: 2, Price: 5})

	//戻り値が残りの一覧
	kept := m.Remove(1)
	assert.Len(t, kept, 1)
	assert.Equal(t, int64(2), kept[0].ProductID)

	//保存済みの内容とも一致する
	assert.Equal(t, kept, m.Items())
	assert.Equal(t, 1, m.Total())
}

func TestCart_Remove_UnknownIDKeepsAll(t *testing.T) {
	m, _ := newCart()

	m.Add(cart.Item{ProductID: 1, Price: 10})

	kept := m.Remove(99)
	assert.Len(t, kept, 1)
	assert.Equal(t, 1, m.Total())
}

func TestCart_Clear_RunsCallback(t *testing.T) {
	m, _ := newCart()

	m.Add(cart.Item{ProductID: 1, Price: 10})

	called := false
	m.Clear(func() { called = true })

	assert.True(t, called)
	assert.Equal(t, 0, m.Total())
}

// storeが無いときは全操作が黙って何もしない（戻り値は空）
func TestCart_NilStore_NoOps(t *testing.T) {
	m := cart.NewManager(nil)

	m.Add(cart.Item{ProductID: 1, Price: 10})
	m.UpdateQuantity(1, 2)

	kept := m.Remove(1)
	assert.NotNil(t, kept)
	assert.Len(t, kept, 0)

	assert.Equal(t, 0, m.Total())
	assert.Equal(t, 0.0, m.OrderTotal())

	called := false
	m.Clear(func() { called = true })
	assert.True(t, called)
}

func TestCart_CorruptedPayloadTreatedAsEmpty(t *testing.T) {
	store := cart.NewMemoryStore()
	store.Set("cart", "{not json")

	m := cart.NewManager(store)
	assert.Equal(t, 0, m.Total())

	//壊れた内容の上から普通に追加できる
	m.Add(cart.Item{ProductID: 1, Price: 10})
	assert.Equal(t, 1, m.Total())
}

// ファイルstoreはプロセスをまたいで内容が残る
func TestCart_FileStore_SurvivesReload(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "storage")

	m1 := cart.NewManager(cart.NewFileStore(dir))
	m1.Add(cart.Item{ProductID: 1, Name: "Phone", Price: 10})
	m1.UpdateQuantity(1, 2)

	//別のManagerで開き直す
	m2 := cart.NewManager(cart.NewFileStore(dir))
	assert.Equal(t, 1, m2.Total())
	assert.Equal(t, 20.0, m2.OrderTotal())

	m2.Clear(nil)
	assert.Equal(t, 0, cart.NewManager(cart.NewFileStore(dir)).Total())
}
