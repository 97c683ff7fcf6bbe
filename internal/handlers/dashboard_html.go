package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) dashboardPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(dashboardHTML))
}

const dashboardHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Solar Panel Cleaner</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: system-ui, sans-serif; background: #f4f6f8; color: #1f2933; padding: 20px; }
h1 { font-size: 1.4em; margin-bottom: 16px; }
h2 { font-size: 1.1em; margin-bottom: 10px; }
section { background: #fff; border-radius: 8px; padding: 16px; margin-bottom: 16px; box-shadow: 0 1px 3px #0002; }
button { padding: 4px 12px; border-radius: 6px; border: 1px solid #9aa5b1; background: #fff; cursor: pointer; }
button:disabled { opacity: .4; cursor: default; }
.on { color: #2f855a; font-weight: 600; }
.off { color: #c53030; font-weight: 600; }
table { width: 100%; border-collapse: collapse; font-size: .9em; }
th, td { text-align: left; padding: 4px 8px; border-bottom: 1px solid #e4e7eb; }
tr.batch { cursor: pointer; }
tr.batch:hover td { background: #f0f4f8; }
.images img { width: 160px; margin: 4px; border: 1px solid #e4e7eb; }
#error { color: #c53030; margin: 8px 0; display: none; }
.muted { color: #7b8794; font-size: .85em; }
</style>
</head>
<body>
<h1>Solar Panel Cleaner</h1>
<div id="error"></div>

<section id="control">
  <h2>Control Panel</h2>
  <p>Cleaner: <span id="power"></span> <button id="toggle">Toggle</button></p>
  <p>Active: <span id="active"></span> <button id="toggleActive">Toggle</button></p>
  <p>Last cleaning: <span id="lastCleaning"></span></p>
  <p>Images captured: <span id="images"></span></p>
  <h2>On/Off history</h2>
  <ul id="history"></ul>
</section>

<section id="ml">
  <h2>ML Output</h2>
  <input id="search" placeholder="Search batches">
  <table><thead><tr><th>Name</th><th>Date</th><th>Damage</th></tr></thead><tbody id="batches"></tbody></table>
  <p class="muted" id="range"></p>
  <button id="prev">Previous</button> <button id="next">Next</button>
  <div id="batch" class="images"></div>
</section>

<section id="schedule">
  <h2>Cleaning Schedule</h2>
  <table><thead><tr><th>Day</th><th>Time</th><th></th></tr></thead><tbody id="entries"></tbody></table>
  <p>
    <select id="newDay"><option value="">Day</option></select>
    <input id="newTime" type="time">
    <button id="add">Add</button>
  </p>
</section>

<script>
const DAYS = ["Monday","Tuesday","Wednesday","Thursday","Friday","Saturday","Sunday"];
const PAGE_SIZE = 5;
let dash = {isCleanerOn: false, isActive: false, onOffHistory: []};
let page = 1, search = "", total = 0;
let schedule = [];

function $(id) { return document.getElementById(id); }
function fail(msg, err) {
  console.error(msg, err);
  $("error").textContent = msg;
  $("error").style.display = "block";
}
function ok() { $("error").style.display = "none"; }

async function api(method, path, body) {
  const opts = {method, headers: {}};
  const token = localStorage.getItem("token");
  if (token) opts.headers["Authorization"] = "Bearer " + token;
  if (body !== undefined) {
    opts.headers["Content-Type"] = "application/json";
    opts.body = JSON.stringify(body);
  }
  const res = await fetch(path, opts);
  if (!res.ok) throw new Error(method + " " + path + ": " + res.status);
  return res.json();
}

function renderDashboard() {
  $("power").textContent = dash.isCleanerOn ? "ON" : "OFF";
  $("power").className = dash.isCleanerOn ? "on" : "off";
  $("active").textContent = dash.isActive ? "Active" : "Inactive";
  $("lastCleaning").textContent = dash.lastCleaningTime || "never";
  $("images").textContent = dash.imagesCaptured || 0;
  $("history").innerHTML = "";
  for (const p of dash.onOffHistory || []) {
    const li = document.createElement("li");
    li.textContent = (p.state ? "ON" : "OFF") + " at " + new Date(p.time).toLocaleString();
    $("history").appendChild(li);
  }
}

async function loadDashboard() {
  try { dash = await api("GET", "/api/dashboard"); ok(); renderDashboard(); }
  catch (e) { fail("Could not load the dashboard.", e); }
}

$("toggle").onclick = async () => {
  try {
    const r = await api("POST", "/api/cleaner/toggle", {state: !dash.isCleanerOn});
    if (!r.success) return;
    dash.isCleanerOn = r.newState;
    dash.onOffHistory = (dash.onOffHistory || []).concat([{state: r.newState, time: new Date().toISOString()}]).slice(-5);
    ok(); renderDashboard();
  } catch (e) { fail("Could not toggle the cleaner.", e); }
};

$("toggleActive").onclick = async () => {
  try {
    const r = await api("POST", "/api/cleaner/active", {active: !dash.isActive});
    if (!r.success) return;
    dash.isActive = r.newActiveState;
    ok(); renderDashboard();
  } catch (e) { fail("Could not change the active state.", e); }
};

async function loadBatches() {
  try {
    const r = await api("GET", "/api/batches?page=" + page + "&search=" + encodeURIComponent(search));
    total = r.totalCount;
    $("batches").innerHTML = "";
    for (const b of r.batches) {
      const tr = document.createElement("tr");
      tr.className = "batch";
      tr.innerHTML = "<td></td><td></td><td></td>";
      tr.children[0].textContent = b.name;
      tr.children[1].textContent = b.date;
      tr.children[2].textContent = b.damageCount;
      tr.onclick = () => showBatch(b);
      $("batches").appendChild(tr);
    }
    const first = Math.min((page - 1) * PAGE_SIZE + 1, total);
    const last = Math.min(page * PAGE_SIZE, total);
    $("range").textContent = "Showing " + first + "-" + last + " of " + total;
    $("prev").disabled = page <= 1;
    $("next").disabled = page * PAGE_SIZE >= total;
    ok();
  } catch (e) { fail("Could not load ML batches.", e); }
}

function showBatch(b) {
  $("batch").innerHTML = "<h2></h2>";
  $("batch").firstChild.textContent = b.name + " (" + b.damageCount + " damaged)";
  for (const img of b.images || []) {
    const el = document.createElement("img");
    el.src = img.url;
    el.title = img.damageCount + " damaged";
    $("batch").appendChild(el);
  }
}

$("search").oninput = (e) => { search = e.target.value; page = 1; loadBatches(); };
$("prev").onclick = () => { if (page > 1) { page--; loadBatches(); } };
$("next").onclick = () => { if (page * PAGE_SIZE < total) { page++; loadBatches(); } };

function renderSchedule() {
  $("entries").innerHTML = "";
  schedule.forEach((s, i) => {
    const tr = document.createElement("tr");
    const day = document.createElement("select");
    for (const d of DAYS) day.add(new Option(d, d, false, d === s.day));
    const time = document.createElement("input");
    time.type = "time";
    time.value = s.time;
    const save = document.createElement("button");
    save.textContent = "Save";
    save.onclick = () => saveEdit(i, {day: day.value, time: time.value});
    const del = document.createElement("button");
    del.textContent = "Delete";
    del.onclick = () => deleteEntry(i);
    for (const el of [day, time]) { const td = document.createElement("td"); td.appendChild(el); tr.appendChild(td); }
    const td = document.createElement("td"); td.appendChild(save); td.appendChild(del); tr.appendChild(td);
    $("entries").appendChild(tr);
  });
}

async function loadSchedule() {
  try { schedule = await api("GET", "/api/schedule"); ok(); renderSchedule(); }
  catch (e) { fail("Could not load the schedule.", e); }
}

async function saveEdit(i, entry) {
  const next = schedule.slice();
  next[i] = entry;
  try {
    const r = await api("PUT", "/api/schedule", next);
    if (r.success) { schedule = r.updatedSchedule; ok(); renderSchedule(); }
  } catch (e) { fail("Could not save the schedule.", e); }
}

async function deleteEntry(i) {
  try {
    const r = await api("DELETE", "/api/schedule/" + i);
    if (r.success) { schedule = schedule.filter((_, j) => j !== i); ok(); renderSchedule(); }
  } catch (e) { fail("Could not delete the entry.", e); }
}

for (const d of DAYS) $("newDay").add(new Option(d, d));
$("add").onclick = async () => {
  const entry = {day: $("newDay").value, time: $("newTime").value};
  if (!entry.day || !entry.time) return;
  try {
    const r = await api("POST", "/api/schedule", entry);
    if (r.success) { schedule = schedule.concat([r.newScheduleItem]); ok(); renderSchedule(); }
  } catch (e) { fail("Could not add the entry.", e); }
};

// Live updates over /ws; fall back to polling when the stream drops.
let poller = null;
function stream() {
  const proto = location.protocol === "https:" ? "wss://" : "ws://";
  const token = localStorage.getItem("token");
  const q = token ? "?access_token=" + encodeURIComponent(token) : "";
  const ws = new WebSocket(proto + location.host + "/ws" + q);
  ws.onopen = () => { if (poller) { clearInterval(poller); poller = null; } };
  ws.onmessage = (ev) => {
    const msg = JSON.parse(ev.data);
    if (msg.type === "dashboard") { dash = msg.data; ok(); renderDashboard(); }
    else if (msg.type === "error") fail("Could not load the dashboard.", msg.error);
  };
  ws.onclose = () => {
    if (!poller) poller = setInterval(loadDashboard, 5000);
    setTimeout(stream, 5000);
  };
}

loadDashboard();
loadBatches();
loadSchedule();
stream();
</script>
</body>
</html>
`
