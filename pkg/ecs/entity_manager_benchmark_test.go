package ecs

import "testing"

// ========== 基准测试组件 ==========

type benchPosition struct {
	X, Y float64
}

type benchVelocity struct {
	VX, VY float64
}

type benchSize struct {
	W, H float64
}

// setupBenchmarkEntities 创建 count 个实体；每个都有位置，偶数实体有速度，每第三个有尺寸
func setupBenchmarkEntities(count int) *EntityManager {
	em := NewEntityManager()
	for i := 0; i < count; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &benchPosition{X: float64(i), Y: float64(i)})
		if i%2 == 0 {
			AddComponent(em, id, &benchVelocity{VX: 1, VY: 1})
		}
		if i%3 == 0 {
			AddComponent(em, id, &benchSize{W: 1, H: 1})
		}
	}
	return em
}

func BenchmarkGetEntitiesWith2(b *testing.B) {
	em := setupBenchmarkEntities(1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GetEntitiesWith2[*benchPosition, *benchVelocity](em)
	}
}

func BenchmarkGetEntitiesWith3(b *testing.B) {
	em := setupBenchmarkEntities(1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GetEntitiesWith3[*benchPosition, *benchVelocity, *benchSize](em)
	}
}

func BenchmarkGetComponent(b *testing.B) {
	em := setupBenchmarkEntities(1000)
	id := EntityID(500)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = GetComponent[*benchPosition](em, id)
	}
}

// BenchmarkMovementLoop 模拟一帧的位置积分
func BenchmarkMovementLoop(b *testing.B) {
	em := setupBenchmarkEntities(1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, id := range GetEntitiesWith2[*benchPosition, *benchVelocity](em) {
			pos, _ := GetComponent[*benchPosition](em, id)
			vel, _ := GetComponent[*benchVelocity](em, id)
			pos.X += vel.VX / 60
			pos.Y += vel.VY / 60
		}
	}
}
