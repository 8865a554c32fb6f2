package integration

import (
	"fmt"

	"github.com/DanielHNCT/delivery-routing-sub000/apps/route-gateway/internal/migration"
)

// NotRegisteredError は未登録の連携方式へのアクセスエラーを表す。
type NotRegisteredError struct {
	Concrete migration.Concrete
}

func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("integration %q is not registered", e.Concrete)
}

// Registry は連携方式の登録管理を行う。
type Registry struct {
	integrations map[migration.Concrete]Integration
}

// NewRegistry は新しいRegistryを生成する。同じ方式は後勝ちで登録する。
func NewRegistry(integrations ...Integration) *Registry {
	r := &Registry{integrations: make(map[migration.Concrete]Integration, len(integrations))}
	for _, i := range integrations {
		r.integrations[i.Concrete()] = i
	}
	return r
}

// Get は指定方式の連携を取得する。
// 未登録の場合はNotRegisteredErrorを返す。
func (r *Registry) Get(c migration.Concrete) (Integration, error) {
	i, ok := r.integrations[c]
	if !ok {
		return nil, &NotRegisteredError{Concrete: c}
	}
	return i, nil
}
