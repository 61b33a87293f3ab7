package docs

import _ "github.com/swaggo/swag"

// @title           Taskflow API
// @version         1.0
// @description     Collaborative kanban boards: ordered lists and cards with realtime propagation

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token

// @tag.name Users
// @tag.description Registration and login

// @tag.name Boards
// @tag.description Board creation and full board fetches

// @tag.name Lists
// @tag.description List creation, reorder batches and move gestures

// @tag.name Cards
// @tag.description Card creation, reorder batches, move gestures and field edits

// @tag.name Realtime
// @tag.description Websocket board groups
