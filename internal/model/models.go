package model

// All 需要自动建表的模型，顺序保证外键依赖先建
func All() []any {
	return []any{
		&User{},
		&Theme{},
		&Post{},
		&PostImage{},
		&Comment{},
		&Like{},
		&Rating{},
		&Favorite{},
		&Message{},
		&EmailOutbox{},
	}
}
