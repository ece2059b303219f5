package mcpserver

// ProjectFormatContract describes the content files an assistant must
// produce when drafting a new project or editing the site profile.
const ProjectFormatContract = `# Folio Content Format

A content directory holds one ` + "`site.yaml`" + ` and one Markdown file per
project under ` + "`projects/`" + `.

## Project file

` + "```" + `markdown
---
id: weather-dashboard        # OPTIONAL - defaults to the file name; lowercase, digits, dashes
title: Weather Dashboard     # REQUIRED (or a leading "# Heading" in the body)
description: One sentence.   # OPTIONAL - defaults to the first paragraph
category: frontend           # REQUIRED - frontend | backend | fullstack
tags: [React, Chart.js]      # OPTIONAL - shown on the card and matched by search
featured: false              # OPTIONAL - featured projects sort first
order: 4                     # OPTIONAL - ascending; ties break on file path
image: /media/weather.png    # OPTIONAL - absolute http(s) URL or site path
image_alt: Dashboard chart   # OPTIONAL - defaults to the title
placeholder_color: "#0c4a6e" # OPTIONAL - tile colour when there is no image
live_url: https://example.com
source_url: https://github.com/you/weather  # github_url is accepted as an alias
---

Longer Markdown write-up shown on the project detail.
` + "```" + `

## Rules

1. Project ids are unique across the directory. A duplicate rejects the
   whole reload and the site keeps serving the previous content.
2. URLs that are not absolute http(s) URLs or site paths are dropped and the
   matching link is hidden.
3. Images live in ` + "`media/`" + ` and are referenced as ` + "`/media/<file>`" + `.
4. Skill levels in ` + "`site.yaml`" + ` are integers from 0 to 100.
5. Files are UTF-8; raw HTML in Markdown is escaped.
`
