// Package ranking 产出 "即将截止" 列表：按截止时刻升序取前 K 个作业。
//
// 候选集合来自存储层时通常已按截止时间排好序，但这里不依赖输入顺序：
// 以 (截止时刻, 作业 ID) 为键的小顶堆保证相同内容的输入总得到相同输出。
package ranking

import (
	"container/heap"

	"github.com/ag-enzo/coursepilot-college-organizer/internal/model"
)

// dueHeap 以截止时刻为主键、ID 为次键的小顶堆
type dueHeap []model.Assignment

func (h dueHeap) Len() int { return len(h) }

func (h dueHeap) Less(i, j int) bool { return Sooner(&h[i], &h[j]) }

func (h dueHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *dueHeap) Push(x interface{}) { *h = append(*h, x.(model.Assignment)) }

func (h *dueHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Sooner 报告 a 是否排在 b 之前：截止时刻更早者优先，相同时刻按 ID 升序
func Sooner(a, b *model.Assignment) bool {
	if !a.DueAt.Equal(b.DueAt.Time) {
		return a.DueAt.Before(b.DueAt.Time)
	}
	return a.AssignmentID < b.AssignmentID
}

// TopK 返回截止最早的至多 k 个作业，按 Sooner 排序。k <= 0 时返回空列表。
// 不过滤已过期作业。输入切片不会被修改。
func TopK(items []model.Assignment, k int) []model.Assignment {
	if k <= 0 || len(items) == 0 {
		return []model.Assignment{}
	}

	h := make(dueHeap, len(items))
	copy(h, items)
	heap.Init(&h)

	if k > len(h) {
		k = len(h)
	}
	out := make([]model.Assignment, 0, k)
	for len(out) < k {
		out = append(out, heap.Pop(&h).(model.Assignment))
	}
	return out
}
