package api

import (
	"net/http"
)

const operatorUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Relocation Engine - Operator Console</title>
    <style>
        * { box-sizing: border-box; margin: 0; padding: 0; }
        body {
            font-family: monospace;
            background: #1a1a2e;
            color: #eee;
            height: 100vh;
            display: flex;
            flex-direction: column;
        }
        header {
            background: #16213e;
            padding: 12px 20px;
            font-size: 18px;
            font-weight: bold;
        }
        main { flex: 1; display: flex; overflow: hidden; }
        section { padding: 16px; overflow-y: auto; }
        #scenarios { width: 40%; border-right: 1px solid #0f3460; }
        #log { flex: 1; font-size: 12px; }
        .scenario {
            background: #16213e;
            border: 1px solid #0f3460;
            border-radius: 4px;
            padding: 10px;
            margin-bottom: 10px;
        }
        .scenario h3 { margin-bottom: 6px; }
        .scenario .meta { color: #9aa; font-size: 12px; margin-bottom: 8px; }
        button {
            background: #0f3460;
            border: none;
            color: #eee;
            font-family: monospace;
            padding: 6px 14px;
            border-radius: 3px;
            cursor: pointer;
        }
        button:hover { background: #e94560; }
        .result { margin-top: 8px; font-size: 12px; white-space: pre-wrap; }
        .ok { color: #6f6; }
        .fail { color: #e94560; }
        .event { padding: 2px 0; border-bottom: 1px solid #16213e; }
        .event .name { color: #5cf; }
    </style>
</head>
<body>
    <header>Relocation Engine</header>
    <main>
        <section id="scenarios"></section>
        <section id="log"></section>
    </main>
    <script>
        const scenariosEl = document.getElementById('scenarios');
        const logEl = document.getElementById('log');

        function loadScenarios() {
            fetch('/api/scenarios')
                .then(r => r.json())
                .then(list => {
                    scenariosEl.innerHTML = '';
                    list.forEach(sc => {
                        const div = document.createElement('div');
                        div.className = 'scenario';
                        let meta = 'budget ' + sc.budget + ' | blocks ' + sc.blocks +
                            ' | misplaced ' + sc.misplaced;
                        if (sc.best_known_cost !== undefined) {
                            meta += ' | best known cost ' + sc.best_known_cost;
                        }
                        div.innerHTML = '<h3>' + sc.id + '</h3>' +
                            '<div class="meta">' + meta + '</div>';
                        const btn = document.createElement('button');
                        btn.textContent = 'Solve';
                        btn.addEventListener('click', () => solve(sc.id, div, btn));
                        div.appendChild(btn);
                        scenariosEl.appendChild(div);
                    });
                })
                .catch(() => { scenariosEl.textContent = 'Failed to load scenarios'; });
        }

        function solve(id, div, btn) {
            btn.disabled = true;
            fetch('/api/solve', {
                method: 'POST',
                headers: { 'Content-Type': 'application/json' },
                body: JSON.stringify({ scenario: id })
            })
                .then(r => r.json())
                .then(res => {
                    btn.disabled = false;
                    let out = div.querySelector('.result');
                    if (!out) {
                        out = document.createElement('div');
                        out.className = 'result';
                        div.appendChild(out);
                    }
                    if (res.ok) {
                        out.className = 'result ok';
                        out.textContent = 'cost ' + res.cost + ', ' + res.plan.length + ' moves:\n' +
                            res.plan.map(s => '  ' + s.block + ': ' +
                                s.sourceLocation + ':' + s.sourcePosition + ' -> ' +
                                s.destLocation + ':' + s.destPosition).join('\n');
                    } else {
                        out.className = 'result fail';
                        out.textContent = res.error || 'solve failed';
                    }
                    loadScenarios();
                })
                .catch(() => { btn.disabled = false; });
        }

        function connectEvents() {
            const proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
            const ws = new WebSocket(proto + location.host + '/ws/events');
            ws.onmessage = (msg) => {
                const e = JSON.parse(msg.data);
                const div = document.createElement('div');
                div.className = 'event';
                div.innerHTML = e.ts + ' <span class="name">' + e.event + '</span> ' +
                    (e.fields ? JSON.stringify(e.fields) : '');
                logEl.prepend(div);
                while (logEl.childElementCount > 200) logEl.removeChild(logEl.lastChild);
            };
            ws.onclose = () => setTimeout(connectEvents, 3000);
        }

        loadScenarios();
        connectEvents();
    </script>
</body>
</html>`

// uiHandler serves the operator console HTML page.
func uiHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(operatorUIHTML))
}
