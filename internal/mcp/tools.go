package mcp

import "github.com/mark3labs/mcp-go/mcp"

// getScheduleTool defines the get_schedule MCP tool.
var getScheduleTool = mcp.NewTool("get_schedule",
	mcp.WithDescription("Get the lessons of one day: time, subject, teacher and room, with remote lessons flagged."),
	mcp.WithString("day",
		mcp.Description("Day key (e.g. monday) or index 0-6 in day-map order. Defaults to today."),
	),
	mcp.WithString("week",
		mcp.Description("Week parity. Defaults to the current week."),
		mcp.Enum("odd", "even"),
	),
)

// listTeachersTool defines the list_teachers MCP tool.
var listTeachersTool = mcp.NewTool("list_teachers",
	mcp.WithDescription("List the teacher roster with subjects and contacts."),
)

// getWeekTypeTool defines the get_week_type MCP tool.
var getWeekTypeTool = mcp.NewTool("get_week_type",
	mcp.WithDescription("Get the week number and parity (odd or even) of a date."),
	mcp.WithString("date",
		mcp.Description("Date as YYYY-MM-DD. Defaults to today."),
	),
)

// listDaysTool defines the list_days MCP tool.
var listDaysTool = mcp.NewTool("list_days",
	mcp.WithDescription("List the day keys and display names in navigation order."),
)
