package errors

import "errors"

// ErrOptimisticLock 乐观锁冲突：课表已被其他操作修改
var ErrOptimisticLock = errors.New("schedule was modified by a concurrent operation")
