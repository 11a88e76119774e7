// Package policy 资源级权限判断，按函数组合
package policy

import (
	"Fishing_Forum/internal/apperr"
)

// Owned 有归属者的资源
type Owned interface {
	OwnerID() uint64
}

// Policy actorID 为 0 表示匿名
type Policy func(actorID uint64, res Owned) error

// Authenticated 要求登录；未登录同样按 403 处理，帖子修改接口就是这样表现的
func Authenticated(actorID uint64, _ Owned) error {
	if actorID == 0 {
		return apperr.Forbidden("You do not have permission to perform this action.")
	}
	return nil
}

func AuthorOnly(actorID uint64, res Owned) error {
	if res == nil || res.OwnerID() != actorID {
		return apperr.Forbidden("You do not have permission to perform this action.")
	}
	return nil
}

// All 依次执行，返回第一个失败
func All(policies ...Policy) Policy {
	return func(actorID uint64, res Owned) error {
		for _, p := range policies {
			if err := p(actorID, res); err != nil {
				return err
			}
		}
		return nil
	}
}

// CanModify 修改、删除自己的内容
var CanModify = All(Authenticated, AuthorOnly)
