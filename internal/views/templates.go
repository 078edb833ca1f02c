package views

const dashboardTemplates = `
{{define "layout"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.AppName}}</title>
<script src="https://cdn.tailwindcss.com"></script>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<link href="https://fonts.googleapis.com/icon?family=Material+Icons" rel="stylesheet">
<style>
.dot-flashing{position:relative;width:6px;height:6px;border-radius:5px;background:#6b7280;animation:dot-flashing 1s infinite linear alternate;animation-delay:.5s;margin-left:12px}
.dot-flashing::before,.dot-flashing::after{content:'';display:inline-block;position:absolute;top:0;width:6px;height:6px;border-radius:5px;background:#6b7280;animation:dot-flashing 1s infinite alternate}
.dot-flashing::before{left:-10px;animation-delay:0s}
.dot-flashing::after{left:10px;animation-delay:1s}
@keyframes dot-flashing{0%{background:#6b7280}50%,100%{background:#d1d5db}}
</style>
</head>
<body class="bg-gray-100 flex min-h-screen" hx-on:keydown="if(event.key==='Escape'&&document.getElementById('modalOverlay')){document.getElementById('modal').innerHTML=''}">
<aside class="w-64 bg-blue-900 text-white flex flex-col">
  <div class="p-4 text-xl font-bold">{{.AppName}}</div>
  <nav class="flex-1 space-y-1 px-2">
    {{range .Nav}}
    <button id="nav-{{.Kind}}" hx-get="/sections/{{.Kind}}" hx-target="#mainContent" hx-push-url="/dashboard?view={{.Kind}}"
      class="w-full flex items-center px-3 py-2 rounded hover:bg-blue-800{{if .Active}} bg-blue-800{{end}}">
      <span class="material-icons mr-2">{{.Icon}}</span>{{.Label}}
    </button>
    {{end}}
  </nav>
</aside>
<div class="flex-1 flex flex-col">
  <div id="notice"></div>
  <main id="mainContent" class="p-6 flex-1">{{template "section" .Section}}</main>
</div>
<div id="modal"></div>
<div class="fixed bottom-6 right-6 flex flex-col items-end">
  <div id="chatbotWindow" class="hidden w-80 h-96 bg-white rounded-lg shadow-2xl flex flex-col mb-3">
    <div class="bg-blue-700 text-white px-4 py-2 rounded-t-lg font-semibold">HOI Assistant</div>
    <div id="chatbotMessages" class="flex-1 overflow-y-auto p-3" hx-get="/chat" hx-trigger="chat-open from:body once" hx-swap="innerHTML scroll:bottom"></div>
    <form class="flex border-t" hx-post="/chat" hx-target="#chatbotMessages" hx-swap="innerHTML scroll:bottom" hx-on::after-request="this.reset()">
      <input id="chatbotInput" name="message" autocomplete="off" class="flex-1 px-3 py-2 text-sm outline-none" placeholder="Ask about stats, pending, alerts...">
      <button type="submit" class="px-3 text-blue-700"><span class="material-icons">send</span></button>
    </form>
  </div>
  <button id="chatbotBtn" class="w-14 h-14 rounded-full bg-blue-700 text-white shadow-lg"
    onclick="document.getElementById('chatbotWindow').classList.toggle('hidden');htmx.trigger(document.body,'chat-open')">
    <span class="material-icons text-2xl">chat</span>
  </button>
</div>
</body>
</html>{{end}}

{{define "section"}}
<h1 id="pageTitle" class="text-2xl font-semibold text-gray-800 mb-6">{{.Page.Title}}</h1>
{{if .Error}}
<div class="p-4 bg-red-100 text-red-700 rounded shadow flex items-center"><span class="material-icons mr-2">error_outline</span>{{.Error}}</div>
{{else if eq .Page.Kind "overview"}}{{template "overview" .Page}}
{{else if eq .Page.Kind "activity"}}{{template "activity" .Page.Activity}}
{{else if eq .Page.Kind "approvals"}}{{template "approvals" .Page.Approvals}}
{{else if eq .Page.Kind "alerts"}}{{template "alerts" .Page.Alerts}}
{{else if eq .Page.Kind "forms_list"}}{{template "forms_list" .Page.Forms}}
{{end}}
{{end}}

{{define "overview"}}
{{template "cards" cards .Metrics false}}
<div class="mt-6 p-4 bg-white rounded-lg shadow-lg">
  <h3 class="text-xl font-semibold mb-4 text-gray-800">Quick Links</h3>
  <div class="flex space-x-4">
    <button hx-get="/sections/activity" hx-target="#mainContent" class="px-4 py-2 bg-blue-600 text-white rounded hover:bg-blue-700 transition duration-150">View Today Activity</button>
    <button hx-get="/sections/approvals" hx-target="#mainContent" class="px-4 py-2 bg-yellow-600 text-white rounded hover:bg-yellow-700 transition duration-150">Review Approvals</button>
  </div>
</div>
{{end}}

{{define "cards"}}
<div id="metricCards"{{if .OOB}} hx-swap-oob="true"{{end}} class="grid grid-cols-1 md:grid-cols-3 gap-6" hx-get="/metrics/cards" hx-trigger="metrics-refresh from:body" hx-swap="outerHTML">
  <div hx-get="/sections/approvals" hx-target="#mainContent" class="bg-white p-6 rounded-lg shadow-lg text-center border-l-4 border-yellow-600 hover:shadow-xl transition duration-150 cursor-pointer">
    <p class="text-4xl font-bold text-yellow-600" id="totalPending">{{.Metrics.Pending}}</p>
    <p class="text-gray-500 mt-2">Pending Approvals</p>
  </div>
  <div hx-get="/sections/activity" hx-target="#mainContent" class="bg-white p-6 rounded-lg shadow-lg text-center border-l-4 border-green-600 hover:shadow-xl transition duration-150 cursor-pointer">
    <p class="text-4xl font-bold text-green-600" id="totalApproved">{{.Metrics.ApprovedToday}}</p>
    <p class="text-gray-500 mt-2">Today Approved</p>
  </div>
  <div hx-get="/sections/alerts" hx-target="#mainContent" class="bg-white p-6 rounded-lg shadow-lg text-center border-l-4 border-red-600 hover:shadow-xl transition duration-150 cursor-pointer">
    <p class="text-4xl font-bold text-red-600" id="totalAlerts">{{.Metrics.Alerts}}</p>
    <p class="text-gray-500 mt-2">Active Alerts</p>
  </div>
</div>
{{end}}

{{define "activity"}}
<div class="bg-white p-4 rounded-lg shadow overflow-x-auto">
  <h3 class="text-xl font-semibold mb-4 text-gray-800">Today Activity Status ({{len .}} Entries)</h3>
  <table class="min-w-full divide-y divide-gray-200">
    <thead class="bg-gray-50">
      <tr>
        <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase tracking-wider">Form Name</th>
        <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase tracking-wider">Saved By</th>
        <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase tracking-wider">Time</th>
        <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase tracking-wider">Status</th>
        <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase tracking-wider">Actions</th>
      </tr>
    </thead>
    <tbody class="bg-white divide-y divide-gray-200">
      {{range .}}
      <tr class="{{if .IsAlert.Bool}}bg-red-50 {{end}}hover:bg-gray-50">
        <td class="px-6 py-4 whitespace-nowrap text-sm font-medium text-gray-900">{{.FormName}}</td>
        <td class="px-6 py-4 whitespace-nowrap text-sm text-gray-500">{{.SavedBy}}</td>
        <td class="px-6 py-4 whitespace-nowrap text-sm text-gray-500">{{shortDateTime .SavedAt}}</td>
        <td class="px-6 py-4 whitespace-nowrap text-sm">
          <span class="px-2 inline-flex text-xs leading-5 font-semibold rounded-full {{statusBadge .Status}}">{{.Status}}</span>
        </td>
        <td class="px-6 py-4 whitespace-nowrap text-sm font-medium space-x-2">
          <button hx-get="/records/{{.ID}}" hx-target="#modal" class="text-blue-600 hover:text-blue-900">View</button>
          <button hx-post="/records/{{.ID}}/alert" hx-vals='{"current": "{{if .IsAlert.Bool}}1{{else}}0{{end}}"}' hx-confirm="{{alertConfirm .ID .IsAlert.Bool}}" hx-target="#mainContent"
            class="{{if .IsAlert.Bool}}text-orange-600 hover:text-orange-800 font-bold{{else}}text-gray-400 hover:text-gray-600{{end}}">
            <span class="material-icons text-base align-middle">{{if .IsAlert.Bool}}warning{{else}}flag{{end}}</span> {{if .IsAlert.Bool}}Alert ON{{else}}Set Alert{{end}}
          </button>
        </td>
      </tr>
      {{end}}
    </tbody>
  </table>
  {{if not .}}<p class="p-4 text-center text-gray-500">No activities recorded today.</p>{{end}}
</div>
{{end}}

{{define "approvals"}}
<div class="bg-white p-4 rounded-lg shadow overflow-x-auto">
  <h3 class="text-xl font-semibold mb-4 text-yellow-700">Pending Submissions for Approval ({{len .}} Entries)</h3>
  <table class="min-w-full divide-y divide-gray-200">
    <thead class="bg-gray-50">
      <tr>
        <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase tracking-wider">Form Name</th>
        <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase tracking-wider">Institute</th>
        <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase tracking-wider">Submitted By</th>
        <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase tracking-wider">Submitted At</th>
        <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase tracking-wider">Actions</th>
      </tr>
    </thead>
    <tbody class="bg-white divide-y divide-gray-200">
      {{range .}}
      <tr class="hover:bg-yellow-50">
        <td class="px-6 py-4 whitespace-nowrap text-sm font-medium text-gray-900">{{.FormName}}</td>
        <td class="px-6 py-4 whitespace-nowrap text-sm text-gray-500">{{orNA .Institute}}</td>
        <td class="px-6 py-4 whitespace-nowrap text-sm text-gray-500">{{.SavedBy}}</td>
        <td class="px-6 py-4 whitespace-nowrap text-sm text-gray-500">{{shortDate .SavedAt}}</td>
        <td class="px-6 py-4 whitespace-nowrap text-sm font-medium space-x-2">
          <button hx-get="/records/{{.ID}}/review?form={{.FormName}}&by={{.SavedBy}}" hx-target="#modal" class="px-3 py-1 bg-green-500 text-white rounded text-xs hover:bg-green-600">Approve/Action</button>
          <button hx-get="/records/{{.ID}}" hx-target="#modal" class="text-blue-600 hover:text-blue-900 text-xs">View Details</button>
        </td>
      </tr>
      {{end}}
    </tbody>
  </table>
  {{if not .}}<p class="p-4 text-center text-gray-500">No pending approvals.</p>{{end}}
</div>
{{end}}

{{define "alerts"}}
<div class="bg-white p-4 rounded-lg shadow overflow-x-auto">
  <h3 class="text-xl font-semibold mb-4 text-red-700">Active High Priority Alerts 🚨 ({{len .}} Alerts)</h3>
  <table class="min-w-full divide-y divide-gray-200">
    <thead class="bg-gray-50">
      <tr>
        <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase tracking-wider">Form Name</th>
        <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase tracking-wider">Institute</th>
        <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase tracking-wider">Submitted By</th>
        <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase tracking-wider">Time</th>
        <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase tracking-wider">Actions</th>
      </tr>
    </thead>
    <tbody class="bg-white divide-y divide-gray-200">
      {{range .}}
      <tr class="bg-red-50 hover:bg-red-100">
        <td class="px-6 py-4 whitespace-nowrap text-sm font-bold text-red-900">{{.FormName}}</td>
        <td class="px-6 py-4 whitespace-nowrap text-sm text-red-700">{{orNA .Institute}}</td>
        <td class="px-6 py-4 whitespace-nowrap text-sm text-red-700">{{.SavedBy}}</td>
        <td class="px-6 py-4 whitespace-nowrap text-sm text-red-700">{{shortDate .SavedAt}}</td>
        <td class="px-6 py-4 whitespace-nowrap text-sm font-medium space-x-2">
          <button hx-get="/records/{{.ID}}" hx-target="#modal" class="text-blue-600 hover:text-blue-900">View</button>
          <button hx-post="/records/{{.ID}}/alert" hx-vals='{"current": "{{if .IsAlert.Bool}}1{{else}}0{{end}}"}' hx-confirm="{{alertConfirm .ID .IsAlert.Bool}}" hx-target="#mainContent" class="px-2 py-1 bg-gray-200 text-gray-600 rounded text-xs hover:bg-gray-300">Clear Alert</button>
        </td>
      </tr>
      {{end}}
    </tbody>
  </table>
  {{if not .}}<p class="p-4 text-center text-gray-500">No active alerts.</p>{{end}}
</div>
{{end}}

{{define "forms_list"}}
<div class="bg-white p-6 rounded-lg shadow-xl">
  <h3 class="text-xl font-semibold mb-4 text-gray-800">List of {{len .}} Action Tables (Forms)</h3>
  <div class="grid grid-cols-2 sm:grid-cols-3 md:grid-cols-4 gap-4">
    {{range .}}
    <a href="{{.URL}}" target="_blank" class="block">
      <div class="p-4 bg-white border border-gray-200 rounded-lg hover:bg-blue-50 cursor-pointer transition duration-150 transform hover:shadow-lg">
        <p class="font-bold text-blue-700">{{.DisplayName}}</p>
        <p class="text-xs text-gray-500">Template: {{.FileName}}</p>
      </div>
    </a>
    {{end}}
  </div>
</div>
<div id="formTemplateContainer" class="mt-6">
  <p class="p-4 text-center text-gray-500 bg-white rounded-lg shadow">Click on a form name to open it in a new tab for data entry.</p>
</div>
{{end}}

{{define "notice"}}
<div id="notice" hx-swap-oob="true">
  {{if .Message}}
  <div class="m-4 p-3 rounded shadow flex items-center {{if eq .Kind "error"}}bg-red-100 text-red-700{{else}}bg-green-100 text-green-800{{end}}">
    <span class="flex-1 whitespace-pre-line">{{.Message}}</span>
    <button onclick="this.parentElement.remove()" class="ml-3"><span class="material-icons text-base">close</span></button>
  </div>
  {{end}}
</div>
{{end}}

{{define "action_result"}}
{{template "notice" .Notice}}
{{if .CloseModal}}<div id="modal" hx-swap-oob="true"></div>{{end}}
{{with .Metrics}}{{template "cards" cards . true}}{{end}}
{{with .Section}}{{template "section" .}}{{end}}
{{end}}

{{define "review_modal"}}
<div class="fixed inset-0 bg-black bg-opacity-50 flex items-center justify-center z-50" id="modalOverlay">
  <div class="bg-white rounded-lg shadow-xl w-full max-w-md p-6">
    <h3 id="modalTitle" class="text-lg font-semibold text-gray-800">Action for: {{.FormName}}</h3>
    <p id="modalUser" class="text-sm text-gray-500 mb-4">Submitted by: {{.SavedBy}}</p>
    {{if .Error}}<p class="mb-3 text-sm text-red-700">{{.Error}}</p>{{end}}
    <form>
      <input type="hidden" name="form" value="{{.FormName}}">
      <input type="hidden" name="by" value="{{.SavedBy}}">
      <textarea id="remarksBox" name="remarks" rows="4" class="w-full border rounded p-2 text-sm" placeholder="Remarks (required for disapproval)"></textarea>
      <div class="flex justify-end space-x-2 mt-4">
        <button type="button" onclick="document.getElementById('modal').innerHTML=''" class="px-4 py-2 bg-gray-200 rounded">Cancel</button>
        <button type="button" hx-post="/records/{{.RecordID}}/disapprove" hx-include="closest form" hx-target="#mainContent" class="px-4 py-2 bg-red-600 text-white rounded">Disapprove</button>
        <button type="button" hx-post="/records/{{.RecordID}}/approve" hx-include="closest form" hx-target="#mainContent" class="px-4 py-2 bg-green-600 text-white rounded">Approve</button>
      </div>
    </form>
  </div>
</div>
{{end}}

{{define "detail"}}
<div class="fixed inset-0 bg-black bg-opacity-50 flex items-center justify-center z-50">
  <div class="bg-white rounded-lg shadow-xl w-full max-w-3xl max-h-[80vh] overflow-y-auto p-4">
    <div class="flex justify-end"><button onclick="document.getElementById('modal').innerHTML=''"><span class="material-icons">close</span></button></div>
    {{if .Error}}
    <p class="p-4 text-red-700">{{.Error}}</p>
    {{else}}
    <pre style="white-space:pre-wrap;word-wrap:break-word;font-family:monospace;padding:16px;">{{.Detail.Text}}</pre>
    {{end}}
  </div>
</div>
{{end}}

{{define "chat_exchange"}}
{{template "chat_messages" .Entries}}
{{if .Pending}}<div hx-post="/chat/reply" hx-trigger="load" hx-vals='{"pending": "{{.Pending}}"}' hx-target="#chatbotMessages" hx-swap="innerHTML scroll:bottom"></div>{{end}}
{{end}}

{{define "chat_messages"}}
{{range .}}
<div class="flex {{if eq .Sender "user"}}justify-end{{else}}justify-start{{end}} mb-2">
  <div {{if .Typing}}id="typingIndicator" {{end}}class="max-w-[80%] px-3 py-2 rounded-lg text-sm shadow-md {{if eq .Sender "user"}}bg-blue-600 text-white rounded-br-none{{else}}bg-gray-200 text-gray-800 rounded-bl-none{{end}}">{{.HTML}}</div>
</div>
{{end}}
{{end}}
`
