package game

import "sync"

// ReaderID 事件通道的读者句柄，每个读者维护独立的读游标
type ReaderID struct {
	_ byte // 保证每个句柄地址唯一
}

// EventChannel 广播式事件通道
//
// 写入按条原子追加；每个读者通过自己的游标读取注册之后写入的全部事件，
// 按写入顺序返回，读者之间互不影响（广播，而非竞争消费）。
// Maintain 每帧调用一次，丢弃所有读者都已读过的前缀。
type EventChannel[T any] struct {
	mu      sync.Mutex
	items   []T
	base    uint64 // items[0] 的绝对序号
	cursors map[*ReaderID]uint64
}

// NewEventChannel 创建空的事件通道
func NewEventChannel[T any]() *EventChannel[T] {
	return &EventChannel[T]{
		cursors: make(map[*ReaderID]uint64),
	}
}

// RegisterReader 注册新读者，读者只能看到注册之后写入的事件
func (c *EventChannel[T]) RegisterReader() *ReaderID {
	c.mu.Lock()
	defer c.mu.Unlock()

	r := &ReaderID{}
	c.cursors[r] = c.base + uint64(len(c.items))
	return r
}

// UnregisterReader 注销读者，其未读事件不再阻止压缩
func (c *EventChannel[T]) UnregisterReader(r *ReaderID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.cursors, r)
}

// Write 追加一个事件
func (c *EventChannel[T]) Write(item T) {
	c.mu.Lock()
	c.items = append(c.items, item)
	c.mu.Unlock()
}

// WriteAll 按顺序追加多个事件
func (c *EventChannel[T]) WriteAll(items ...T) {
	c.mu.Lock()
	c.items = append(c.items, items...)
	c.mu.Unlock()
}

// Read 返回读者自上次读取以来的所有事件（写入顺序），并推进其游标
// 未注册的读者返回 nil
func (c *EventChannel[T]) Read(r *ReaderID) []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	cursor, ok := c.cursors[r]
	if !ok {
		return nil
	}

	end := c.base + uint64(len(c.items))
	if cursor >= end {
		return nil
	}

	start := cursor - c.base
	out := make([]T, len(c.items)-int(start))
	copy(out, c.items[start:])
	c.cursors[r] = end
	return out
}

// Maintain 压缩缓冲区：丢弃所有读者都已读过的事件
// 没有读者时整个缓冲区被清空
func (c *EventChannel[T]) Maintain() {
	c.mu.Lock()
	defer c.mu.Unlock()

	end := c.base + uint64(len(c.items))
	min := end
	for _, cursor := range c.cursors {
		if cursor < min {
			min = cursor
		}
	}

	drop := int(min - c.base)
	if drop == 0 {
		return
	}

	var zero T
	for i := 0; i < drop; i++ {
		c.items[i] = zero
	}
	c.items = append(c.items[:0], c.items[drop:]...)
	c.base = min
}

// Len 返回缓冲区中尚未被压缩的事件数
func (c *EventChannel[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Readers 返回已注册的读者数量
func (c *EventChannel[T]) Readers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cursors)
}
