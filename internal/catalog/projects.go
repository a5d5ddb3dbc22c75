package catalog

import "github.com/vibetank/vibetank/internal/types"

var defaultProfile = types.ProfileInfo{
	Name:    "TANK",
	Role:    "GDC Project Manager",
	Year:    2025,
	Tagline: "Building the Future, One Mission at a Time",
	Footer:  "© 2025 TANK — ALL SYSTEMS OPERATIONAL",
}

var defaultProjects = []types.Project{
	{
		ID:          1,
		Name:        "KT Skylife",
		Period:      "JAN — JUL",
		Timeline:    "JAN 2025 — JUL 2025",
		Description: "Led the comprehensive migration of legacy systems to Vue2 framework for KT Skylife, developing robust API integrations for new business services.",
		Tags:        []string{"Vue2 Migration", "API Development", "Legacy System"},
		Stats: []types.Stat{
			{Value: "2", Label: "Team"},
			{Value: "7", Label: "Months"},
			{Value: "100%", Label: "Done"},
		},
		Icon:       "🎯",
		IconImage:  "/logos/kt-skylife.png",
		AIImage:    "/ai/kt-skylife-tank.png",
		Script:     "Mission one began with a system nobody wanted to touch.\n\nSeven months later the legacy portal ran on Vue2 without a single hour of downtime.",
		Color:      "#8bc34a",
		StartMonth: 0,
		EndMonth:   6,
		Details: &types.ProjectDetails{
			Overview: "The KT Skylife project is a large-scale initiative focused on migrating a legacy system to a modern Vue2-based architecture.",
			Responsibilities: []string{
				"Managed the overall project schedule and resource allocation",
				"Designed the Vue2 framework architecture",
				"Developed API integrations and backend connectivity",
				"Conducted code reviews and ensured quality control",
				"Coordinated client communication and requirement alignment",
			},
			Technologies: []string{"Vue2", "Vuex", "Vue Router", "Axios", "Element UI", "Node.js", "REST API", "JAVA", "JAVA script", "EJB", "JSP", "angularJS"},
			Achievements: []string{
				"Achieved 50% performance improvement over legacy system",
				"Improved user interface response speed by 3x",
				"Improved code maintainability",
				"Successful non-stop migration",
			},
			Challenges: []string{
				"Ensuring data compatibility with existing systems",
				"Real-time service without interruption during migration",
				"Reimplementation of complex business logic",
			},
		},
	},
	{
		ID:          2,
		Name:        "REKO HR System",
		Period:      "AUG — DEC",
		Timeline:    "AI-POWERED VIBE CODING",
		Description: "Revolutionary HR management platform built using AI-assisted development. Web portals, iOS & Android apps with full HR features.",
		Tags:        []string{"AI Dev", "React", "Mobile Apps"},
		Features:    []string{"Attendance", "E-Approval", "KPI", "Reports", "Expenses", "Calendar"},
		Icon:        "⚡",
		IconImage:   "/logos/reko-hr.png",
		AIImage:     "/ai/reko-hr-tank.png",
		Color:       "#7cb342",
		StartMonth:  7,
		EndMonth:    11,
		Details: &types.ProjectDetails{
			Overview: "The REKO HR System is an innovative HR management platform built using an AI-assisted development approach (Vibe Coding). It supports web, iOS, and Android platforms.",
			Responsibilities: []string{
				"AI-based development process design and implementation",
				"React Native mobile app architecture",
				"Next.js-based web portal development",
				"E-approval workflow design",
				"KPI dashboard and reporting system",
			},
			Technologies: []string{"React", "Next.js", "React Native", "TypeScript", "Node.js", "PostgreSQL", "Claude AI"},
			Achievements: []string{
				"Development time reduced by 60% (AI utilization)",
				"Successful simultaneous release of 3 platforms",
				"User satisfaction rate of 95%",
				"HR task processing time reduced by 40%",
			},
			Challenges: []string{
				"Quality management of AI-generated code",
				"Cross-platform UI/UX consistency",
				"Complex e-approval workflow implementation",
			},
		},
		Outputs: []types.Output{
			{Name: "Admin Portal", Description: "Admin portal for Providers to manage Customers", URL: "https://admin.reko-hr.com", Icon: types.OutputAdmin},
			{Name: "Web App", Description: "HR web application used by Customers", URL: "https://app.reko-hr.com", Icon: types.OutputApp},
			{Name: "Landing Page", Description: "REKO HR introduction and sign-up homepage", URL: "https://www.reko-hr.com", Icon: types.OutputLanding},
			{Name: "iOS App", Description: "iOS app available for download on the App Store", URL: "https://apps.apple.com/id/app/reko-hr/id6756481918", Icon: types.OutputIOS},
			{Name: "Android App", Description: "Android app available for download on Google Play", URL: "https://play.google.com/store/apps/details?id=com.rekohr.mobile", Icon: types.OutputAndroid},
		},
	},
	{
		ID:          3,
		Name:        "MTI xPlatform",
		Period:      "INTERMITTENT",
		Timeline:    "DLL PROTECTOR",
		Description: "Advanced security solution to detect and prevent DLL injection and hacking attempts. Continuously updated for emerging threats.",
		Tags:        []string{"Security", "DLL Protection", "Anti-Hacking"},
		Stats: []types.Stat{
			{Value: "24/7", Label: "Protection"},
			{Value: "∞", Label: "Updates"},
		},
		Icon:               "🛡️",
		Color:              "#689f38",
		StartMonth:         0,
		EndMonth:           11,
		IntermittentMonths: []int{3, 11},
		Details: &types.ProjectDetails{
			Overview: "MTI xPlatform is an advanced security solution designed to detect and block DLL injection and hacking attempts. It is continuously updated to respond to emerging threats.",
			Responsibilities: []string{
				"Security vulnerability analysis and patch development",
				"DLL injection detection algorithm improvement",
				"Real-time monitoring system management",
				"Security update deployment management",
				"Customer technical support and education",
			},
			Technologies: []string{"C++", "Windows API", "Kernel Driver", "Reverse Engineering"},
			Achievements: []string{
				"DLL injection prevention",
				"Background program execution",
				"100% security incident prevention for clients",
				"Minimized system load",
			},
			Challenges: []string{
				"New hacking techniques in real-time response",
				"Security implementation without performance degradation",
				"Compatibility across various environments",
			},
		},
	},
	{
		ID:          4,
		Name:        "Security Assessment",
		Period:      "SEP — DEC",
		Timeline:    "SEP 2025 — ONGOING",
		Description: "Comprehensive IT security assessment for KT Skylife infrastructure. Auditing physical servers, software systems, and IT management.",
		Tags:        []string{"IT Security", "Infrastructure", "Compliance"},
		Stats: []types.Stat{
			{Value: "360°", Label: "Coverage"},
			{Value: "Q4", Label: "Timeline"},
		},
		Icon:       "🔒",
		Color:      "#aed581",
		StartMonth: 8,
		EndMonth:   11,
		Details: &types.ProjectDetails{
			Overview: "A comprehensive IT security assessment project for BCAP infrastructure. It audits physical servers, software systems, and overall IT management.",
			Responsibilities: []string{
				"Infrastructure security vulnerability inspection",
				"Network security architecture analysis",
				"Access control policy review",
				"Security compliance evaluation",
				"Improvement recommendation writing and reporting",
			},
			Technologies: []string{"Nessus", "Burp Suite", "Wireshark", "OWASP ZAP", "Metasploit", "Nmap"},
			Achievements: []string{
				"Identification of high-risk vulnerabilities",
				"Security policy improvement proposal",
				"ISMS certification preparation",
				"Company-wide security awareness training",
			},
			Challenges: []string{
				"Email transmission file export inspection",
				"Security policy application for general file exports",
				"Server access control enhancement",
			},
		},
	},
}
