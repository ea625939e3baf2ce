package service

// Owned 有归属作者的实体
type Owned interface {
	OwnerID() uint
}

// IsOwner 判断操作者是否为实体作者，匿名操作者（0）永远不是
func IsOwner(entity Owned, actorID uint) bool {
	if entity == nil || actorID == 0 {
		return false
	}
	return entity.OwnerID() == actorID
}
