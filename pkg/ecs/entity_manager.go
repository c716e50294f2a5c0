package ecs

import (
	"reflect"
	"sort"
)

// EntityID 是实体的唯一标识符，0 保留为无效ID
type EntityID uint64

// componentStore 单一组件类型的存储（类型擦除后的公共操作）
type componentStore interface {
	remove(id EntityID)
	has(id EntityID) bool
	owners() []EntityID
}

// store 按组件类型分开的扁平存储：dense 连续存放组件，index 记录实体到下标的映射
type store[T any] struct {
	dense  []T
	owner  []EntityID
	index  map[EntityID]int
	sorted bool
}

func newStore[T any]() *store[T] {
	return &store[T]{index: make(map[EntityID]int), sorted: true}
}

func (s *store[T]) set(id EntityID, c T) {
	if i, ok := s.index[id]; ok {
		s.dense[i] = c
		return
	}
	if n := len(s.owner); n > 0 && s.owner[n-1] > id {
		s.sorted = false
	}
	s.index[id] = len(s.dense)
	s.dense = append(s.dense, c)
	s.owner = append(s.owner, id)
}

func (s *store[T]) get(id EntityID) (T, bool) {
	if i, ok := s.index[id]; ok {
		return s.dense[i], true
	}
	var zero T
	return zero, false
}

// remove 用末尾元素填补空位（swap-remove）
func (s *store[T]) remove(id EntityID) {
	i, ok := s.index[id]
	if !ok {
		return
	}
	last := len(s.dense) - 1
	if i != last {
		s.dense[i] = s.dense[last]
		s.owner[i] = s.owner[last]
		s.index[s.owner[i]] = i
		s.sorted = false
	}
	var zero T
	s.dense[last] = zero
	s.dense = s.dense[:last]
	s.owner = s.owner[:last]
	delete(s.index, id)
}

func (s *store[T]) has(id EntityID) bool {
	_, ok := s.index[id]
	return ok
}

// owners 返回按 ID 升序排列的实体列表（副本）
func (s *store[T]) owners() []EntityID {
	out := make([]EntityID, len(s.owner))
	copy(out, s.owner)
	if !s.sorted {
		sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	}
	return out
}

// EntityManager 管理所有实体和组件
// 组件按类型存放在扁平容器中，查询结果按 EntityID 升序返回，保证系统遍历顺序确定
type EntityManager struct {
	nextID uint64
	alive  map[EntityID]struct{}
	stores map[reflect.Type]componentStore
	// 待删除的实体ID列表
	entitiesToDestroy []EntityID
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:            1, // ID从1开始,0保留为无效ID
		alive:             make(map[EntityID]struct{}),
		stores:            make(map[reflect.Type]componentStore),
		entitiesToDestroy: make([]EntityID, 0),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.alive[id] = struct{}{}
	return id
}

// Exists 检查实体是否存在（已标记删除但尚未清理的实体仍视为存在）
func (em *EntityManager) Exists(id EntityID) bool {
	_, ok := em.alive[id]
	return ok
}

// EntityCount 返回当前实体数量
func (em *EntityManager) EntityCount() int {
	return len(em.alive)
}

// DestroyEntity 标记实体待删除(不立即删除)
func (em *EntityManager) DestroyEntity(id EntityID) {
	em.entitiesToDestroy = append(em.entitiesToDestroy, id)
}

// RemoveMarkedEntities 清理所有标记删除的实体
func (em *EntityManager) RemoveMarkedEntities() {
	for _, id := range em.entitiesToDestroy {
		for _, s := range em.stores {
			s.remove(id)
		}
		delete(em.alive, id)
	}
	em.entitiesToDestroy = em.entitiesToDestroy[:0] // 清空切片
}

func storeFor[T any](em *EntityManager, create bool) *store[T] {
	key := reflect.TypeFor[T]()
	if s, ok := em.stores[key]; ok {
		return s.(*store[T])
	}
	if !create {
		return nil
	}
	s := newStore[T]()
	em.stores[key] = s
	return s
}

// AddComponent 为实体添加组件，同类型组件已存在时覆盖
// 实体不存在时忽略
func AddComponent[T any](em *EntityManager, id EntityID, component T) {
	if !em.Exists(id) {
		return
	}
	storeFor[T](em, true).set(id, component)
}

// GetComponent 获取实体的特定类型组件
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	s := storeFor[T](em, false)
	if s == nil {
		var zero T
		return zero, false
	}
	return s.get(id)
}

// HasComponent 检查实体是否拥有特定类型组件
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	s := storeFor[T](em, false)
	return s != nil && s.has(id)
}

// RemoveComponent 从实体移除指定类型的组件
func RemoveComponent[T any](em *EntityManager, id EntityID) {
	if s := storeFor[T](em, false); s != nil {
		s.remove(id)
	}
}

// GetEntitiesWith1 查询拥有组件 A 的所有实体
func GetEntitiesWith1[A any](em *EntityManager) []EntityID {
	s := storeFor[A](em, false)
	if s == nil {
		return nil
	}
	return s.owners()
}

// GetEntitiesWith2 查询同时拥有组件 A、B 的所有实体
func GetEntitiesWith2[A, B any](em *EntityManager) []EntityID {
	a := storeFor[A](em, false)
	b := storeFor[B](em, false)
	if a == nil || b == nil {
		return nil
	}

	// 以较小的存储为驱动
	var drive []EntityID
	var other componentStore
	if len(a.owner) <= len(b.owner) {
		drive, other = a.owners(), b
	} else {
		drive, other = b.owners(), a
	}

	result := drive[:0]
	for _, id := range drive {
		if other.has(id) {
			result = append(result, id)
		}
	}
	return result
}

// GetEntitiesWith3 查询同时拥有组件 A、B、C 的所有实体
func GetEntitiesWith3[A, B, C any](em *EntityManager) []EntityID {
	c := storeFor[C](em, false)
	if c == nil {
		return nil
	}
	ids := GetEntitiesWith2[A, B](em)
	result := ids[:0]
	for _, id := range ids {
		if c.has(id) {
			result = append(result, id)
		}
	}
	return result
}
