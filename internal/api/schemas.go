package api

import "blog-service/internal/validation"

// Declared request shapes, one per operation, mirroring the documented
// field constraints.

func intPtr(n int) *int { return &n }

var idParamField = validation.Field{
	Name: "id", Source: validation.Param, Type: validation.Int,
	Required: true, TypeMsg: "ID must be a valid number",
}

var pageField = validation.Field{
	Name: "page", Source: validation.Query, Type: validation.Int,
	Min: intPtr(1), TypeMsg: "Page must be a valid number", MinMsg: "Page must be greater than 0",
}

var limitField = validation.Field{
	Name: "limit", Source: validation.Query, Type: validation.Int,
	Min: intPtr(1), Max: intPtr(100),
	TypeMsg: "Limit must be a valid number",
	MinMsg:  "Limit must be between 1 and 100", MaxMsg: "Limit must be between 1 and 100",
}

var createUserSchema = validation.Schema{Fields: []validation.Field{
	{Name: "name", Source: validation.Body, Type: validation.String, Required: true, Trim: true, MinLen: 2, MaxLen: 100},
	{Name: "email", Source: validation.Body, Type: validation.String, Required: true, Trim: true, Email: true},
	{Name: "password", Source: validation.Body, Type: validation.String, Required: true, MinLen: 6, MaxLen: 255},
	{Name: "age", Source: validation.Body, Type: validation.Int, Min: intPtr(0), Max: intPtr(120),
		TypeMsg: "Age must be an integer", MinMsg: "Age cannot be negative", MaxMsg: "Age cannot be greater than 120"},
}}

var updateUserSchema = validation.Schema{Fields: []validation.Field{
	idParamField,
	{Name: "name", Source: validation.Body, Type: validation.String, Trim: true, MinLen: 2, MaxLen: 100},
	{Name: "email", Source: validation.Body, Type: validation.String, Trim: true, Email: true},
	{Name: "password", Source: validation.Body, Type: validation.String, MinLen: 6, MaxLen: 255},
	{Name: "age", Source: validation.Body, Type: validation.Int, Min: intPtr(0), Max: intPtr(120),
		TypeMsg: "Age must be an integer", MinMsg: "Age cannot be negative", MaxMsg: "Age cannot be greater than 120"},
	{Name: "isActive", Source: validation.Body, Type: validation.Bool, TypeMsg: "isActive must be a boolean"},
}}

var getByIDSchema = validation.Schema{Fields: []validation.Field{idParamField}}

var listUsersSchema = validation.Schema{Fields: []validation.Field{
	pageField,
	limitField,
	{Name: "isActive", Source: validation.Query, Type: validation.Bool, TypeMsg: "isActive must be true or false"},
}}

var createPostSchema = validation.Schema{Fields: []validation.Field{
	{Name: "title", Source: validation.Body, Type: validation.String, Required: true, Trim: true, MinLen: 3, MaxLen: 200},
	{Name: "content", Source: validation.Body, Type: validation.String, Required: true, Trim: true, MinLen: 1,
		MinMsg: "Content cannot be empty"},
	{Name: "tags", Source: validation.Body, Type: validation.StringSlice, TypeMsg: "Tags must be an array of strings"},
	{Name: "userId", Source: validation.Body, Type: validation.Int, Required: true, Min: intPtr(1),
		RequiredMsg: "UserId is required", TypeMsg: "UserId must be an integer", MinMsg: "UserId must be positive"},
}}

var updatePostSchema = validation.Schema{Fields: []validation.Field{
	idParamField,
	{Name: "title", Source: validation.Body, Type: validation.String, Trim: true, MinLen: 3, MaxLen: 200},
	{Name: "content", Source: validation.Body, Type: validation.String, Trim: true, MinLen: 1,
		MinMsg: "Content cannot be empty"},
	{Name: "tags", Source: validation.Body, Type: validation.StringSlice, TypeMsg: "Tags must be an array of strings"},
	{Name: "isPublished", Source: validation.Body, Type: validation.Bool, TypeMsg: "isPublished must be a boolean"},
}}

var listPostsSchema = validation.Schema{Fields: []validation.Field{
	pageField,
	limitField,
	{Name: "isPublished", Source: validation.Query, Type: validation.Bool, TypeMsg: "isPublished must be true or false"},
	{Name: "userId", Source: validation.Query, Type: validation.Int, TypeMsg: "UserId must be a valid number"},
}}

var loginSchema = validation.Schema{Fields: []validation.Field{
	{Name: "email", Source: validation.Body, Type: validation.String, Required: true, Trim: true, Email: true},
	{Name: "password", Source: validation.Body, Type: validation.String, Required: true},
}}
