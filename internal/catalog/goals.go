package catalog

import "github.com/vibetank/vibetank/internal/types"

var defaultGoals = []types.Goal{
	{
		ID:          1,
		Title:       "MTI MAINTENANCE",
		Subtitle:    "Claude AI Integration",
		Description: "Achieving complete mastery of MTI system maintenance through Claude AI. Building intelligent automation and predictive maintenance.",
		Icon:        "🤖",
		Color:       "#00f5ff",
		Features:    []string{"AI Diagnostics", "Auto-Recovery", "Predictive Analytics", "Zero-Downtime"},
	},
	{
		ID:          2,
		Title:       "LECTURE SYSTEM",
		Subtitle:    "Next-Gen Education",
		Description: "Revolutionary learning management system with AI tutoring, real-time collaboration, and immersive content delivery.",
		Icon:        "🎓",
		Color:       "#ff00ff",
		Features:    []string{"AI Tutor", "VR/AR Learning", "Real-time Analytics", "Adaptive Curriculum"},
	},
	{
		ID:          3,
		Title:       "KB FINANCIAL KPI",
		Subtitle:    "Enterprise Intelligence",
		Description: "Building cutting-edge KPI management system for KB Financial Group with real-time dashboards and AI-driven insights.",
		Icon:        "📊",
		Color:       "#ffff00",
		Features:    []string{"Live Dashboards", "AI Predictions", "Auto Reports", "Goal Tracking"},
	},
	{
		ID:          4,
		Title:       "AI EXPANSION",
		Subtitle:    "IT Innovation & Growth",
		Description: "Expanding IT capabilities through AI solutions, machine learning, automation, and intelligent systems.",
		Icon:        "🚀",
		Color:       "#00ff88",
		Features:    []string{"ML Integration", "Process Automation", "Smart Analytics", "AI Consulting"},
	},
}
